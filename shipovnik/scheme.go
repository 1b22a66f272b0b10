package shipovnik

import (
	"runtime"
)

// Scheme binds the signature algorithm to a public matrix and a degree
// of parallelism. A Scheme holds no mutable state and may be shared
// between goroutines.
type Scheme struct {
	matrix  *Matrix
	workers int
}

// NewScheme returns a scheme using the provided public matrix (nil for
// DefaultMatrix()) and running at most workers rounds concurrently
// (0 or less for runtime.GOMAXPROCS(0)). Key pairs are tied to the
// matrix: a public key computed with one matrix does not verify
// signatures made under another.
func NewScheme(m *Matrix, workers int) *Scheme {
	if m == nil {
		m = DefaultMatrix()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheme{matrix: m, workers: workers}
}

// Matrix returns the public matrix used by the scheme.
func (s *Scheme) Matrix() *Matrix {
	return s.matrix
}
