package shipovnik

import (
	"bytes"
)

// One round of the identification protocol.
//
// The signer draws a random vector u and a random permutation sigma,
// and commits to:
//
//	c0 = hash(pack(sigma) || H*u)
//	c1 = hash(sigma(u))
//	c2 = hash(sigma(u XOR s))
//
// Depending on the challenge digit b, the response is:
//
//	b = 0   pack(sigma) || u
//	b = 1   pack(sigma) || (u XOR s)
//	b = 2   sigma(u) || sigma(s)
//
// Each response lets the verifier recompute exactly two of the three
// commitments.

// Per-round secret state of the signer. Both fields are sensitive.
type round_state struct {
	u     []byte   // SecretKeySize bytes
	sigma []uint16 // N indices
}

func (rs *round_state) wipe() {
	wipe(rs.u)
	wipe_u16(rs.sigma)
}

// Compute the three commitments of a round into c (3*HashSize bytes).
func commit_round(m *Matrix, sk []byte, rs *round_state, c []byte) error {
	sy := make([]byte, SigmaPackedSize+PublicKeySize)
	u1 := make([]byte, SecretKeySize)
	u2 := make([]byte, SecretKeySize)
	defer wipe(sy, u1, u2)

	// c0 = hash(sigma || H*u)
	if _, err := pack_sigma(rs.sigma, sy[:SigmaPackedSize]); err != nil {
		return err
	}
	m.syndrome(rs.u, sy[SigmaPackedSize:])
	hash512(c[0:HashSize], sy)

	// c1 = hash(sigma(u))
	apply_permutation(rs.sigma, rs.u, u1)
	hash512(c[HashSize:2*HashSize], u1)

	// c2 = hash(sigma(u XOR s))
	bitwise_xor(u1, rs.u, sk)
	apply_permutation(rs.sigma, u1, u2)
	hash512(c[2*HashSize:3*HashSize], u2)
	return nil
}

// Write the response of a round for challenge digit b into dst, which
// must have room for responseSize(b) bytes. The number of written bytes
// is returned.
func write_response(b uint8, sk []byte, rs *round_state, dst []byte) (int, error) {
	switch b {
	case 0:
		if _, err := pack_sigma(rs.sigma, dst[:SigmaPackedSize]); err != nil {
			return 0, err
		}
		copy(dst[SigmaPackedSize:SigmaPackedSize+SecretKeySize], rs.u)
	case 1:
		if _, err := pack_sigma(rs.sigma, dst[:SigmaPackedSize]); err != nil {
			return 0, err
		}
		bitwise_xor(dst[SigmaPackedSize:SigmaPackedSize+SecretKeySize], rs.u, sk)
	case 2:
		apply_permutation(rs.sigma, rs.u, dst[:SecretKeySize])
		apply_permutation(rs.sigma, sk, dst[SecretKeySize:2*SecretKeySize])
	default:
		return 0, ErrEncoding
	}
	return responseSize(b), nil
}

// Check one round: c holds the claimed commitments (3*HashSize bytes),
// b is the challenge digit and r the response (exactly responseSize(b)
// bytes). Returned value is true if the two recomputable commitments
// match (and, for b = 2, the revealed permuted key has weight W).
func check_round(m *Matrix, pk []byte, c []byte, b uint8, r []byte) bool {
	if len(r) != responseSize(b) {
		return false
	}
	var cc [HashSize]byte
	c0 := c[0:HashSize]
	c1 := c[HashSize : 2*HashSize]
	c2 := c[2*HashSize : 3*HashSize]

	switch b {
	case 0, 1:
		r0 := r[:SigmaPackedSize]
		r1 := r[SigmaPackedSize:]
		sigma := make([]uint16, N)
		if _, err := unpack_sigma(r0, sigma); err != nil {
			return false
		}
		if !is_permutation(sigma) {
			return false
		}

		// c0: syndrome of the revealed vector; for b = 1 the revealed
		// vector is u XOR s, and H*(u XOR s) XOR pk = H*u.
		y := make([]byte, PublicKeySize)
		m.syndrome(r1, y)
		if b == 1 {
			bitwise_xor(y, y, pk)
		}
		hash512(cc[:], r0, y)
		if !bytes.Equal(cc[:], c0) {
			return false
		}

		// c1 (b = 0) or c2 (b = 1): hash of the permuted vector.
		u1 := make([]byte, SecretKeySize)
		apply_permutation(sigma, r1, u1)
		hash512(cc[:], u1)
		if b == 0 {
			return bytes.Equal(cc[:], c1)
		}
		return bytes.Equal(cc[:], c2)

	case 2:
		r0 := r[:SecretKeySize]
		r1 := r[SecretKeySize:]
		hash512(cc[:], r0)
		if !bytes.Equal(cc[:], c1) {
			return false
		}
		u1 := make([]byte, SecretKeySize)
		bitwise_xor(u1, r0, r1)
		hash512(cc[:], u1)
		if !bytes.Equal(cc[:], c2) {
			return false
		}
		return count_bits(r1) == W

	default:
		return false
	}
}
