package gsvd

import (
	"errors"
	"fmt"

	"github.com/pmolfese/GSVD/internal/svd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrComplexSingularValue                = errors.New("gsvd: complex singular value")
	ErrNegativeSingularValueAboveTolerance = errors.New("gsvd: negative singular value above tolerance")
	ErrAllSingularValuesBelowTolerance     = errors.New("gsvd: all singular values are below tolerance")
	ErrInvalidVectorCount                  = errors.New("gsvd: invalid singular vector count")
	ErrInconsistentFactorization           = errors.New("gsvd: factorization does not match requested vector counts")
	ErrLabelLength                         = errors.New("gsvd: label count does not match matrix dimension")
	ErrNilMatrix                           = errors.New("gsvd: nil matrix")
)

// Factorizer is the dense SVD primitive Decompose delegates to.
//
// Implementations return the singular values in descending order, a
// rows x nu matrix of left and a cols x nv matrix of right singular vectors.
// nu and nv never exceed min(rows, cols); a zero count means a nil matrix.
type Factorizer interface {
	Factorize(a mat.Matrix, nu, nv int) (*Raw, error)
}

// Raw is a factorization as returned by a Factorizer.
type Raw struct {
	D []float64
	// Imag holds imaginary parts of D for solvers that can report them.
	// It is nil for real-valued solvers.
	Imag []float64
	U, V *mat.Dense
}

// Decomposition is the result of Decompose.
type Decomposition struct {
	D    []float64
	U, V *mat.Dense
	// RowNames label the rows of U, ColNames the rows of V.
	// Both are nil when the input matrix carries no labels.
	RowNames, ColNames []string
}

// Len returns the number of retained singular values.
func (d *Decomposition) Len() int {
	return len(d.D)
}

// Reconstruct returns U * diag(D) * V^T over the components present in all
// three factors, or nil if there are none.
func (d *Decomposition) Reconstruct() *mat.Dense {
	return svd.Reconstruct(d.D, d.U, d.V)
}

type gonumFactorizer struct{}

func (gonumFactorizer) Factorize(a mat.Matrix, nu, nv int) (*Raw, error) {
	s, u, v, err := svd.New(nu, nv).Exec(a)
	if err != nil {
		return nil, err
	}
	return &Raw{D: s, U: u, V: v}, nil
}

// Decompose computes the singular value decomposition of x and drops the
// components whose squared singular value is below the tolerance.
//
// Process:
//  1. Factorizes x with nu left and nv right singular vectors.
//  2. Returns the factorization unmodified if the tolerance is disabled.
//  3. Rejects complex singular values and negative ones whose square exceeds the tolerance.
//  4. Keeps singular values with d^2 >= tol, in their original order.
//  5. Truncates U and V and attaches x's row and column names to them.
//  6. Flips each component so that the column of V sums to a non-negative value.
//
// When nu (or nv) is smaller than the number of surviving components, U
// (or V) keeps its first nu columns by position.
//
// Errors from the Factorizer are returned as-is.
func Decompose(x mat.Matrix, opts ...Option) (*Decomposition, error) {
	if isNil(x) {
		return nil, ErrNilMatrix
	}
	var cfg config
	rows, cols := x.Dims()
	if err := cfg.init(rows, cols, opts...); err != nil {
		return nil, err
	}

	raw, err := cfg.factorizer.Factorize(x, cfg.nu, cfg.nv)
	if err != nil {
		return nil, err
	}

	tol, ok := cfg.tol.Value()
	if !ok {
		return &Decomposition{D: raw.D, U: raw.U, V: raw.V}, nil
	}

	if err := validate(raw, tol); err != nil {
		return nil, err
	}
	keep := survivors(raw.D, tol)
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: tol=%v", ErrAllSingularValuesBelowTolerance, tol)
	}

	res := &Decomposition{D: make([]float64, len(keep))}
	for i, k := range keep {
		res.D[i] = raw.D[k]
	}
	if res.U, err = truncate(raw.U, cfg.nu, keep); err != nil {
		return nil, err
	}
	if res.V, err = truncate(raw.V, cfg.nv, keep); err != nil {
		return nil, err
	}
	if res.RowNames, res.ColNames, err = labelsOf(x); err != nil {
		return nil, err
	}
	alignSigns(res.U, res.V)
	return res, nil
}

// isNil also catches typed nil pointers, whose Dims would panic.
func isNil(x mat.Matrix) bool {
	switch m := x.(type) {
	case nil:
		return true
	case *mat.Dense:
		return m == nil
	case *LabeledDense:
		return m == nil || m.Dense == nil
	}
	return false
}

func validate(raw *Raw, tol float64) error {
	for i, im := range raw.Imag {
		if im != 0 {
			return fmt.Errorf("%w: d[%d] has imaginary part %v", ErrComplexSingularValue, i, im)
		}
	}
	for i, s := range raw.D {
		if s*s > tol && s < 0 {
			return fmt.Errorf("%w: d[%d]=%v", ErrNegativeSingularValueAboveTolerance, i, s)
		}
	}
	return nil
}

// survivors returns the indices of d whose square reaches tol. NaN never does.
func survivors(d []float64, tol float64) []int {
	keep := make([]int, 0, len(d))
	for i, s := range d {
		if s*s >= tol {
			keep = append(keep, i)
		}
	}
	return keep
}

// truncate keeps the survivor columns of m when n covers them all and the
// first n columns otherwise.
func truncate(m *mat.Dense, n int, keep []int) (*mat.Dense, error) {
	idx := keep
	if n < len(keep) {
		idx = make([]int, n)
		for i := range idx {
			idx[i] = i
		}
	}
	if len(idx) == 0 {
		return nil, nil
	}
	if m == nil {
		return nil, fmt.Errorf("%w: want %d columns, got none", ErrInconsistentFactorization, len(idx))
	}

	r, c := m.Dims()
	dst := mat.NewDense(r, len(idx), nil)
	col := make([]float64, r)
	for j, k := range idx {
		if k >= c {
			return nil, fmt.Errorf("%w: column %d of %d", ErrInconsistentFactorization, k, c)
		}
		dst.SetCol(j, mat.Col(col, k, m))
	}
	return dst, nil
}

// alignSigns negates every component whose column of v sums to a negative
// value. The component is negated in u and v together so that
// u * diag(d) * v^T is unchanged.
func alignSigns(u, v *mat.Dense) {
	if v == nil {
		return
	}
	r, c := v.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		if floats.Sum(mat.Col(col, j, v)) < 0 {
			flipComponent(u, v, j)
		}
	}
}

func flipComponent(u, v *mat.Dense, j int) {
	for _, m := range []*mat.Dense{u, v} {
		if m == nil {
			continue
		}
		if _, c := m.Dims(); j >= c {
			continue
		}
		col := mat.Col(nil, j, m)
		floats.Scale(-1, col)
		m.SetCol(j, col)
	}
}
