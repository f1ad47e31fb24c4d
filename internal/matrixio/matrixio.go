package matrixio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gsvd "github.com/pmolfese/GSVD"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty  = errors.New("matrixio: no numeric data")
	ErrRagged = errors.New("matrixio: rows have different lengths")
)

// CSVOptions describes the layout of a CSV matrix.
type CSVOptions struct {
	// Header marks the first record as column names.
	Header   bool
	// RowNames marks the first field of each record as the row name.
	RowNames bool
	Comma    rune
}

// ReadCSV parses a numeric matrix from r.
func ReadCSV(r io.Reader, opts CSVOptions) (*gsvd.LabeledDense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matrixio: read csv: %w", err)
	}

	var colNames []string
	if opts.Header && len(records) > 0 {
		colNames = records[0]
		records = records[1:]
		if opts.RowNames && len(colNames) > 0 {
			// the corner cell names the row label column
			colNames = colNames[1:]
		}
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	skip := 0
	if opts.RowNames {
		skip = 1
	}
	rows := len(records)
	cols := len(records[0]) - skip
	if cols <= 0 {
		return nil, ErrEmpty
	}

	var rowNames []string
	data := make([]float64, 0, rows*cols)
	for i, rec := range records {
		if len(rec)-skip != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i+1, len(rec)-skip, cols)
		}
		if opts.RowNames {
			rowNames = append(rowNames, rec[0])
		}
		for j, field := range rec[skip:] {
			f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("matrixio: row %d column %d: %w", i+1, j+1, err)
			}
			data = append(data, f)
		}
	}
	if colNames != nil && len(colNames) != cols {
		return nil, fmt.Errorf("%w: header has %d names, rows have %d values", ErrRagged, len(colNames), cols)
	}

	return gsvd.NewLabeledDense(mat.NewDense(rows, cols, data), rowNames, colNames)
}

type decompositionJSON struct {
	D        []float64   `json:"d"`
	U        [][]float64 `json:"u"`
	V        [][]float64 `json:"v"`
	RowNames []string    `json:"row_names,omitempty"`
	ColNames []string    `json:"col_names,omitempty"`
}

// WriteJSON writes d as a single JSON object. U and V are written row by row.
func WriteJSON(w io.Writer, d *gsvd.Decomposition) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(decompositionJSON{
		D:        d.D,
		U:        rowsOf(d.U),
		V:        rowsOf(d.V),
		RowNames: d.RowNames,
		ColNames: d.ColNames,
	})
}

func rowsOf(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
