package gsvd

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Labeler is implemented by matrices that carry row and column identifiers.
// An empty slice means the dimension is unlabeled.
type Labeler interface {
	RowNames() []string
	ColNames() []string
}

// LabeledDense is a dense matrix with optional row and column names.
type LabeledDense struct {
	*mat.Dense
	rowNames, colNames []string
}

// NewLabeledDense attaches names to m. Each name slice must be empty or
// match the corresponding dimension of m.
func NewLabeledDense(m *mat.Dense, rowNames, colNames []string) (*LabeledDense, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	r, c := m.Dims()
	if err := checkNames(rowNames, r, "row"); err != nil {
		return nil, err
	}
	if err := checkNames(colNames, c, "column"); err != nil {
		return nil, err
	}
	return &LabeledDense{
		Dense:    m,
		rowNames: slices.Clone(rowNames),
		colNames: slices.Clone(colNames),
	}, nil
}

func (m *LabeledDense) RowNames() []string { return m.rowNames }
func (m *LabeledDense) ColNames() []string { return m.colNames }

func checkNames(names []string, n int, dim string) error {
	if len(names) != 0 && len(names) != n {
		return fmt.Errorf("%w: %d %s names for %d %ss", ErrLabelLength, len(names), dim, n, dim)
	}
	return nil
}

// labelsOf returns copies of x's names, or nil when x carries none.
func labelsOf(x mat.Matrix) (rowNames, colNames []string, err error) {
	l, ok := x.(Labeler)
	if !ok {
		return nil, nil, nil
	}
	r, c := x.Dims()
	rowNames, colNames = l.RowNames(), l.ColNames()
	if err := checkNames(rowNames, r, "row"); err != nil {
		return nil, nil, err
	}
	if err := checkNames(colNames, c, "column"); err != nil {
		return nil, nil, err
	}
	if len(rowNames) == 0 {
		rowNames = nil
	}
	if len(colNames) == 0 {
		colNames = nil
	}
	return slices.Clone(rowNames), slices.Clone(colNames), nil
}
