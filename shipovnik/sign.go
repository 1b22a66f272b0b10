package shipovnik

import (
	"crypto/rand"
	"io"

	"golang.org/x/sync/errgroup"
)

// Sign a message using a given secret key, with the built-in public
// matrix.
//
//   - rng is the random source to use (nil to use the OS RNG)
//   - skey is the secret key
//   - msg is the message to sign
//
// Using the OS RNG (i.e. setting rng to nil) is recommended. If an
// explicit random source is provided, then the caller MUST make sure that
// it provides sufficient entropy.
// The returned signature has a variable length, at most SignatureMaxSize.
func Sign(rng io.Reader, skey []byte, msg []byte) ([]byte, error) {
	return NewScheme(nil, 0).Sign(rng, skey, msg)
}

// Sign a message with this scheme's matrix. See [Sign].
func (s *Scheme) Sign(rng io.Reader, skey []byte, msg []byte) ([]byte, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if !valid_secret_key(skey) {
		return nil, ErrSecretKey
	}

	// All the entropy is read upfront, in round order (u, then the
	// shuffle words), so that the signature only depends on the
	// stream contents and not on the scheduling of rounds.
	us := make([]byte, DELTA*SecretKeySize)
	sigmas := make([]uint16, DELTA*N)
	ent := make([]uint32, DELTA*N)
	rounds := make([]round_state, DELTA)
	for i := range rounds {
		rounds[i].u = us[i*SecretKeySize : (i+1)*SecretKeySize]
		rounds[i].sigma = sigmas[i*N : (i+1)*N]
	}
	defer func() {
		for i := range rounds {
			rounds[i].wipe()
		}
	}()
	defer wipe_u32(ent)
	tmp := make([]byte, 4*N)
	for i := 0; i < DELTA; i++ {
		if _, err := io.ReadFull(rng, rounds[i].u); err != nil {
			return nil, entropy_error(err)
		}
		if err := read_entropy(rng, ent[i*N:(i+1)*N], tmp); err != nil {
			return nil, err
		}
	}

	// Commitments; each round writes only its own slots.
	sig := make([]byte, SignatureMaxSize)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := 0; i < DELTA; i++ {
		g.Go(func() error {
			buf := make([]uint64, N)
			random_permutation(ent[i*N:(i+1)*N], rounds[i].sigma, buf)
			c := sig[i*3*HashSize : (i+1)*3*HashSize]
			return commit_round(s.matrix, skey, &rounds[i], c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Challenge.
	b := make([]uint8, DELTA)
	if err := derive_challenge(msg, sig[:CommitmentsSize], b); err != nil {
		return nil, err
	}

	// Responses.
	off := CommitmentsSize
	for i := 0; i < DELTA; i++ {
		n, err := write_response(b[i], skey, &rounds[i], sig[off:])
		if err != nil {
			wipe(sig)
			return nil, err
		}
		off += n
	}
	return append([]byte(nil), sig[:off]...), nil
}
