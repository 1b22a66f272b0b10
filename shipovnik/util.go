package shipovnik

import (
	"hash"
	"io"
	"math/bits"

	"go.cypherpunks.ru/gogost/v5/gost34112012512"
	sha3 "golang.org/x/crypto/sha3"
)

// Scheme parameters.
const (
	// Code length (bits in a secret key).
	N = 2896
	// Code dimension; the public matrix H' has K rows.
	K = 1448
	// Hamming weight of a secret key.
	W = 318
	// Number of protocol rounds in a signature.
	DELTA = 219
	// Output size of the hash function (Streebog-512), in bytes.
	HashSize = 64
)

// Derived sizes (in bytes).
const (
	// Encoded secret key: N bits, MSB-first.
	SecretKeySize = N / 8
	// Encoded public key: N-K syndrome bits, MSB-first.
	PublicKeySize = (N - K) / 8
	// The commitments block: three hash values per round.
	CommitmentsSize = DELTA * 3 * HashSize
	// A permutation of N indices, 12 bits per index.
	SigmaPackedSize = sigmaBits * N / 8
	// Upper bound on the size of a signature. Actual signatures are
	// shorter, since rounds with challenge digit 2 use only
	// 2*SecretKeySize bytes.
	SignatureMaxSize = CommitmentsSize + DELTA*(SigmaPackedSize+SecretKeySize)
	// Raw size of the public matrix H' (K rows of N-K bits).
	MatrixSize = K * rowBytes
)

const sigmaBits = 12

// Bytes per row of H'.
const rowBytes = (N - K) / 8

// Get the size of the response block for a given challenge digit. An
// invalid digit yields -1.
func responseSize(digit uint8) int {
	switch digit {
	case 0, 1:
		return SigmaPackedSize + SecretKeySize
	case 2:
		return 2 * SecretKeySize
	default:
		return -1
	}
}

// Create a new Streebog-512 instance.
func newHash512() hash.Hash {
	return gost34112012512.New()
}

// Hash the concatenation of the provided chunks with Streebog-512; the
// result is written into dst (64 bytes).
func hash512(dst []byte, chunks ...[]byte) {
	h := newHash512()
	for _, c := range chunks {
		h.Write(c)
	}
	h.Sum(dst[:0])
}

// d <- a XOR b (all three of the same length).
func bitwise_xor(d []byte, a []byte, b []byte) {
	for i := range d {
		d[i] = a[i] ^ b[i]
	}
}

// Number of bits set to 1 in a packed bit vector.
func count_bits(src []byte) int {
	c := 0
	for _, x := range src {
		c += bits.OnesCount8(x)
	}
	return c
}

// Overwrite sensitive buffers with zeros.
func wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}

func wipe_u16(bufs ...[]uint16) {
	for _, b := range bufs {
		clear(b)
	}
}

func wipe_u32(bufs ...[]uint32) {
	for _, b := range bufs {
		clear(b)
	}
}

// A deterministic byte stream based on four parallel SHAKE256 instances,
// with interleaved outputs.
//
// It is used to expand the public matrix from a short seed, and as a
// reproducible entropy source for tests and test vectors. It MUST NOT
// be used as the random source for real keys or signatures unless the
// seed itself is secret and uniformly random.
type shake256x4 struct {
	state [4]sha3.ShakeHash
	buf   [4 * 136]byte
	ptr   int
}

// Create a new SHAKE256x4 instance, initialized with the provided seed.
func newSHAKE256x4(seed []byte) *shake256x4 {
	r := new(shake256x4)
	for i := 0; i < 4; i++ {
		var tmp [1]byte
		tmp[0] = byte(i)
		r.state[i] = sha3.NewShake256()
		r.state[i].Write(seed)
		r.state[i].Write(tmp[:])
	}
	r.ptr = len(r.buf)
	return r
}

// Read fills dst with the next bytes of the stream; it never fails.
func (r *shake256x4) Read(dst []byte) (int, error) {
	n := 0
	for n < len(dst) {
		if r.ptr == len(r.buf) {
			r.refill()
		}
		k := copy(dst[n:], r.buf[r.ptr:])
		r.ptr += k
		n += k
	}
	return n, nil
}

// Refill a SHAKE256x4 instance.
func (r *shake256x4) refill() {
	var tmp [136]byte
	for i := 0; i < 4; i++ {
		r.state[i].Read(tmp[:])
		for j := 0; j < 17; j++ {
			u := (i << 3) + (j << 5)
			v := j << 3
			copy(r.buf[u:u+8], tmp[v:v+8])
		}
	}
	r.ptr = 0
}

// NewSeededReader returns a deterministic stream of pseudo-random bytes
// derived from the provided seed (SHAKE256-based). Two readers created
// with the same seed produce the same stream. This is meant for tests
// and reproducible test vectors; use nil (the OS RNG) in production.
func NewSeededReader(seed []byte) io.Reader {
	return newSHAKE256x4(seed)
}
