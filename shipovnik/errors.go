package shipovnik

import (
	"github.com/pkg/errors"
)

var (
	// ErrCapacity is reported when a multiword integer would exceed its
	// preallocated capacity.
	ErrCapacity = errors.New("multiword capacity exceeded")

	// ErrEncoding is reported for malformed packed permutations,
	// out-of-range challenge digits and oversized matrix encodings.
	ErrEncoding = errors.New("invalid encoding")

	// ErrEntropy is reported when the random source fails.
	ErrEntropy = errors.New("entropy source failure")

	// ErrSecretKey is reported when a secret key has the wrong length
	// or the wrong Hamming weight.
	ErrSecretKey = errors.New("invalid secret key")
)

// A failure of the random source. It matches ErrEntropy with errors.Is
// and unwraps to the error reported by the reader.
type entropyError struct {
	cause error
}

func entropy_error(err error) error {
	return &entropyError{cause: err}
}

func (e *entropyError) Error() string {
	return ErrEntropy.Error() + ": " + e.cause.Error()
}

func (e *entropyError) Is(target error) bool {
	return target == ErrEntropy
}

func (e *entropyError) Unwrap() error {
	return e.cause
}

// Cause is used by github.com/pkg/errors.Cause.
func (e *entropyError) Cause() error {
	return e.cause
}
