package shipovnik

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Verify a signature with the built-in public matrix.
//
//   - pkey is the public key
//   - msg is the signed message
//   - sig is the signature to verify
//
// Returned value is true for a valid signature, false otherwise. No
// indication is given about the reason of a failure.
func Verify(pkey []byte, msg []byte, sig []byte) bool {
	return NewScheme(nil, 0).Verify(pkey, msg, sig)
}

var errReject = errors.New("round rejected")

// Verify a signature with this scheme's matrix. See [Verify].
func (s *Scheme) Verify(pkey []byte, msg []byte, sig []byte) bool {
	if len(pkey) != PublicKeySize || len(sig) < CommitmentsSize {
		return false
	}

	// Recompute the challenge; the digits give the size of each
	// response, so that the offsets are known before any round is
	// checked.
	b := make([]uint8, DELTA)
	if err := derive_challenge(msg, sig[:CommitmentsSize], b); err != nil {
		return false
	}
	offs := make([]int, DELTA+1)
	offs[0] = CommitmentsSize
	for i := 0; i < DELTA; i++ {
		rl := responseSize(b[i])
		if rl < 0 {
			return false
		}
		offs[i+1] = offs[i] + rl
		if offs[i+1] > len(sig) {
			return false
		}
	}
	if offs[DELTA] != len(sig) {
		return false
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(s.workers)
	for i := 0; i < DELTA; i++ {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			c := sig[i*3*HashSize : (i+1)*3*HashSize]
			if !check_round(s.matrix, pkey, c, b[i], sig[offs[i]:offs[i+1]]) {
				return errReject
			}
			return nil
		})
	}
	return g.Wait() == nil
}
