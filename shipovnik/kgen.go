package shipovnik

import (
	"crypto/rand"
	"io"
)

// Generate a new key pair with the built-in public matrix.
//
//   - rng is random source to use (nil to use the OS RNG).
//
// Output is the new key pair (secret and public keys, both encoded).
// An error is reported if the random source fails.
func KeyGen(rng io.Reader) (skey []byte, pkey []byte, err error) {
	return NewScheme(nil, 0).KeyGen(rng)
}

// KeyGen generates a new key pair for this scheme's matrix. The secret
// key is a random vector of N bits with weight exactly W; the public
// key is its syndrome.
func (s *Scheme) KeyGen(rng io.Reader) (skey []byte, pkey []byte, err error) {
	if rng == nil {
		rng = rand.Reader
	}
	sk := make([]byte, SecretKeySize)
	if err = gen_vector(rng, sk); err != nil {
		return nil, nil, err
	}
	pk := make([]byte, PublicKeySize)
	s.matrix.syndrome(sk, pk)
	return sk, pk, nil
}

// PublicKey recomputes the public key matching a secret key. An error
// is returned if the secret key has the wrong length or weight.
func (s *Scheme) PublicKey(skey []byte) ([]byte, error) {
	if !valid_secret_key(skey) {
		return nil, ErrSecretKey
	}
	pk := make([]byte, PublicKeySize)
	s.matrix.syndrome(skey, pk)
	return pk, nil
}

func valid_secret_key(skey []byte) bool {
	return len(skey) == SecretKeySize && count_bits(skey) == W
}
