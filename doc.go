// Package gsvd provides a singular value decomposition that discards
// components attributable to floating-point noise.
//
// Decompose factorizes a matrix with gonum, drops singular values whose
// square falls below a tolerance (machine epsilon by default) and fixes the
// arbitrary sign of each component so that the columns of V sum to a
// non-negative value. The result is meant as input for PCA-like methods.
//
// Row and column names of a LabeledDense input are carried over to the rows
// of U and V respectively.
package gsvd
