package gsvd

import (
	"errors"
	"fmt"
)

type Option func(*config) error

type config struct {
	nu, nv     int
	tol        Tolerance
	factorizer Factorizer
}

// WithNU sets how many left singular vectors to keep at most.
// The default is min(rows, cols); larger values are capped to it.
func WithNU(nu int) Option {
	return func(c *config) error {
		if nu < 0 {
			return fmt.Errorf("%w: nu=%d", ErrInvalidVectorCount, nu)
		}
		c.nu = nu
		return nil
	}
}

// WithNV sets how many right singular vectors to keep at most.
// The default is min(rows, cols); larger values are capped to it.
func WithNV(nv int) Option {
	return func(c *config) error {
		if nv < 0 {
			return fmt.Errorf("%w: nv=%d", ErrInvalidVectorCount, nv)
		}
		c.nv = nv
		return nil
	}
}

// WithTolerance sets the threshold for squared singular values.
// NaN, infinite and negative values disable filtering, see NewTolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) error {
		c.tol = NewTolerance(tol)
		return nil
	}
}

// WithoutTolerance disables filtering. Decompose then returns the
// factorization exactly as the Factorizer produced it.
func WithoutTolerance() Option {
	return func(c *config) error {
		c.tol = Disabled()
		return nil
	}
}

// WithFactorizer replaces the gonum-backed SVD primitive.
func WithFactorizer(f Factorizer) Option {
	return func(c *config) error {
		if f == nil {
			return errors.New("gsvd: nil factorizer")
		}
		c.factorizer = f
		return nil
	}
}

func (c *config) init(rows, cols int, opts ...Option) error {
	k := min(rows, cols)
	c.nu, c.nv = k, k
	c.tol = NewTolerance(MachineEpsilon)
	c.factorizer = gonumFactorizer{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	c.nu = min(c.nu, k)
	c.nv = min(c.nv, k)
	return nil
}
