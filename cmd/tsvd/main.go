// Command tsvd reads a numeric CSV matrix and prints its tolerance-truncated
// singular value decomposition as JSON.
package main

import (
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	gsvd "github.com/pmolfese/GSVD"
	"github.com/pmolfese/GSVD/internal/matrixio"
	"github.com/sirupsen/logrus"
)

type options struct {
	NU       int     `long:"nu" default:"-1" description:"number of left singular vectors, min(rows, cols) if negative"`
	NV       int     `long:"nv" default:"-1" description:"number of right singular vectors, min(rows, cols) if negative"`
	Tol      float64 `long:"tol" default:"2.220446049250313e-16" description:"tolerance for squared singular values; NaN, Inf or negative disables filtering"`
	NoTol    bool    `long:"no-tol" description:"disable tolerance filtering"`
	Header   bool    `long:"header" description:"first line holds column names"`
	RowNames bool    `long:"row-names" description:"first field of each line holds the row name"`
	Verbose  bool    `short:"v" long:"verbose" description:"debug logging"`
	Args     struct {
		File string `positional-arg-name:"FILE" description:"CSV input, stdin if empty or -"`
	} `positional-args:"yes"`
}

func (o options) tolerance() gsvd.Tolerance {
	if o.NoTol {
		return gsvd.Disabled()
	}
	return gsvd.NewTolerance(o.Tol)
}

func (o options) decomposeOptions(tol gsvd.Tolerance) []gsvd.Option {
	var opts []gsvd.Option
	if o.NU >= 0 {
		opts = append(opts, gsvd.WithNU(o.NU))
	}
	if o.NV >= 0 {
		opts = append(opts, gsvd.WithNV(o.NV))
	}
	if v, ok := tol.Value(); ok {
		opts = append(opts, gsvd.WithTolerance(v))
	} else {
		opts = append(opts, gsvd.WithoutTolerance())
	}
	return opts
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := run(opts, os.Stdin, os.Stdout, logger); err != nil {
		logger.WithError(err).Error("decomposition failed")
		os.Exit(1)
	}
}

func run(opts options, stdin io.Reader, stdout io.Writer, logger logrus.FieldLogger) error {
	in := stdin
	if opts.Args.File != "" && opts.Args.File != "-" {
		f, err := os.Open(opts.Args.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	x, err := matrixio.ReadCSV(in, matrixio.CSVOptions{Header: opts.Header, RowNames: opts.RowNames})
	if err != nil {
		return err
	}
	rows, cols := x.Dims()
	logger.WithFields(logrus.Fields{
		"rows": rows,
		"cols": cols,
	}).Debug("read matrix")

	tol := opts.tolerance()
	res, err := gsvd.Decompose(x, opts.decomposeOptions(tol)...)
	if err != nil {
		return fmt.Errorf("decompose %dx%d matrix: %w", rows, cols, err)
	}
	logger.WithFields(logrus.Fields{
		"kept":       res.Len(),
		"candidates": min(rows, cols),
		"tol":        tol.String(),
	}).Info("decomposed matrix")

	return matrixio.WriteJSON(stdout, res)
}
