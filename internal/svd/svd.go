package svd

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyMatrix  = errors.New("svd: empty matrix")
	ErrNotConverged = errors.New("svd: cannot factorize")
)

// SVD computes singular values together with the requested number of
// left (nu) and right (nv) singular vectors.
type SVD struct {
	nu, nv int
}

func New(nu, nv int) *SVD {
	return &SVD{nu: nu, nv: nv}
}

// Exec factorizes a as U * Σ * V^T.
//
// s holds all min(rows, cols) singular values in descending order. u has
// rows x nu and v has cols x nv columns, both capped at min(rows, cols).
// A zero count returns a nil matrix.
func (svd *SVD) Exec(a mat.Matrix) (s []float64, u, v *mat.Dense, err error) {
	if a == nil {
		return nil, nil, nil, ErrEmptyMatrix
	}
	h, w := a.Dims()
	if h == 0 || w == 0 {
		return nil, nil, nil, ErrEmptyMatrix
	}
	minDim := min(h, w)
	nu := clamp(svd.nu, minDim)
	nv := clamp(svd.nv, minDim)

	kind := mat.SVDNone
	if nu > 0 {
		kind |= mat.SVDThinU
	}
	if nv > 0 {
		kind |= mat.SVDThinV
	}

	var result mat.SVD
	if ok := result.Factorize(a, kind); !ok {
		return nil, nil, nil, ErrNotConverged
	}

	s = result.Values(nil)
	if nu > 0 {
		var full mat.Dense
		result.UTo(&full)
		u = leading(&full, nu)
	}
	if nv > 0 {
		var full mat.Dense
		result.VTo(&full)
		v = leading(&full, nv)
	}
	return s, u, v, nil
}

// Reconstruct returns U * Σ * V^T over the first k components, where k is the
// smallest of len(s) and the widths of u and v. It returns nil when k is zero.
func Reconstruct(s []float64, u, v *mat.Dense) *mat.Dense {
	if u == nil || v == nil {
		return nil
	}
	ur, uc := u.Dims()
	vr, vc := v.Dims()
	k := min(len(s), uc, vc)
	if k == 0 {
		return nil
	}

	sigma := mat.NewDiagDense(k, append([]float64(nil), s[:k]...))
	var res mat.Dense
	res.Product(u.Slice(0, ur, 0, k), sigma, v.Slice(0, vr, 0, k).T())
	return &res
}

// leading copies the first n columns of m.
func leading(m *mat.Dense, n int) *mat.Dense {
	r, c := m.Dims()
	if n >= c {
		return m
	}
	return mat.DenseCopyOf(m.Slice(0, r, 0, n))
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
