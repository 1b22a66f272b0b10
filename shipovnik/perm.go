package shipovnik

import (
	"encoding/binary"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Permutations and bit vectors.
//
// A permutation is a slice of N indices (uint16) which is a bijection
// on [0,N-1]. Bit vectors are packed 8 bits per byte, most significant
// bit first: bit i of vector a is (a[i>>3] >> (7 - (i&7))) & 1.

// Conditionally swap *a and *b so that *a <= *b on output. This is
// branchless.
func u64_minmax(a *uint64, b *uint64) {
	x := *a
	y := *b
	c := y - x
	c >>= 63
	c = -c
	c &= x ^ y
	*a = x ^ c
	*b = y ^ c
}

// Sort a slice of 64-bit values in ascending order. The sequence of
// memory accesses depends only on the slice length, not on the values.
// The length does not have to be a power of two.
func u64_sort(x []uint64) {
	n := len(x)
	if n < 2 {
		return
	}
	top := 1
	for top < n {
		top <<= 1
	}
	top >>= 1

	for p := top; p > 0; p >>= 1 {
		for i := 0; i < n-p; i++ {
			if (i & p) == 0 {
				u64_minmax(&x[i], &x[i+p])
			}
		}
		i := 0
		for q := top; q > p; q >>= 1 {
			for ; i < n-q; i++ {
				if (i & p) == 0 {
					a := x[i+p]
					for r := q; r > p; r >>= 1 {
						u64_minmax(&a, &x[i+r])
					}
					x[i+p] = a
				}
			}
		}
	}
}

// Shuffle the values pi[] with the random words p[] (same length).
// Each pair (p[i], pi[i]) is merged into a 48-bit key, with the random
// word on the high bits; the keys are sorted, and the low 16 bits are
// extracted back into pi[]. Ties on the random words are broken by the
// original values. buf[] must have room for len(pi) elements.
func shuffle(p []uint32, pi []uint16, buf []uint64) {
	n := len(pi)
	buf = buf[:n]
	for i := 0; i < n; i++ {
		buf[i] = (uint64(p[i]) << 16) | uint64(pi[i])
	}
	u64_sort(buf)
	for i := 0; i < n; i++ {
		pi[i] = uint16(buf[i])
	}
	clear(buf)
}

// Decode 4*len(dst) bytes of entropy as little-endian 32-bit words.
func decode_entropy(src []byte, dst []uint32) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(src[i<<2:])
	}
}

// Read 4*len(dst) bytes from rng into dst (little-endian words); tmp
// must have room for 4*len(dst) bytes, and is wiped on output.
func read_entropy(rng io.Reader, dst []uint32, tmp []byte) error {
	tmp = tmp[:len(dst)<<2]
	defer wipe(tmp)
	if _, err := io.ReadFull(rng, tmp); err != nil {
		return entropy_error(err)
	}
	decode_entropy(tmp, dst)
	return nil
}

// Set perm to a random permutation of [0,N-1], driven by the entropy
// words p[] (N elements). buf[] must have room for N elements.
func random_permutation(p []uint32, perm []uint16, buf []uint64) {
	for i := 0; i < N; i++ {
		perm[i] = uint16(i)
	}
	shuffle(p, perm, buf)
}

// Generate a random vector of length N and Hamming weight exactly W,
// encoded in dst (SecretKeySize bytes). The first W positions are set,
// then shuffled with 4*N bytes read from rng. The random source failing
// is reported as an error; dst is then left unmodified.
func gen_vector(rng io.Reader, dst []byte) error {
	s := make([]uint16, N)
	p := make([]uint32, N)
	buf := make([]uint64, N)
	tmp := make([]byte, 4*N)
	defer wipe_u16(s)
	defer wipe_u32(p)

	if err := read_entropy(rng, p, tmp); err != nil {
		return err
	}
	for i := 0; i < W; i++ {
		s[i] = 1
	}
	shuffle(p, s, buf)
	for i := 0; i < N; i += 8 {
		x := byte(0)
		for j := 0; j < 8; j++ {
			x = (x << 1) | byte(s[i+j]&1)
		}
		dst[i>>3] = x
	}
	return nil
}

// Permute bits: bit i of dst is set to bit p[i] of src, for i in
// [0,len(p)-1]. The destination must have room for (len(p)+7)/8 bytes;
// unused bits of the last byte are left untouched.
func apply_permutation(p []uint16, src []byte, dst []byte) {
	for i, j := range p {
		bit := (src[j>>3] >> (7 - (j & 7))) & 1
		k := uint(7 - (i & 7))
		dst[i>>3] = (dst[i>>3] &^ (1 << k)) | (bit << k)
	}
}

// Encode permutation indices into bytes, 12 bits per index, big-endian:
// [0x0C1A, 0x02F9] -> [0xC1, 0xA2, 0xF9]. The number of indices must be
// even; the number of written bytes is returned.
func pack_sigma(src []uint16, dst []byte) (int, error) {
	if (len(src) & 1) != 0 {
		return 0, errors.Wrap(ErrEncoding, "odd number of indices")
	}
	j := 0
	for i := 0; i < len(src); i += 2 {
		x0 := src[i]
		x1 := src[i+1]
		dst[j+0] = byte(x0 >> 4)
		dst[j+1] = byte(x0<<4) | byte(x1>>8)
		dst[j+2] = byte(x1)
		j += 3
	}
	return j, nil
}

// Decode permutation indices (12 bits per index, big-endian) into dst,
// which must have room for 2*len(src)/3 elements. The source length must
// be a multiple of 3. The number of decoded indices is returned.
func unpack_sigma(src []byte, dst []uint16) (int, error) {
	if len(src)%3 != 0 {
		return 0, errors.Wrap(ErrEncoding, "packed length is not a multiple of 3")
	}
	j := 0
	for i := 0; i < len(src); i += 3 {
		dst[j+0] = (uint16(src[i]) << 4) | (uint16(src[i+1]) >> 4)
		dst[j+1] = (uint16(src[i+1]&0x0F) << 8) | uint16(src[i+2])
		j += 2
	}
	return j, nil
}

// Check that p is a bijection on [0,len(p)-1].
func is_permutation(p []uint16) bool {
	n := uint(len(p))
	seen := bitset.New(n)
	for _, j := range p {
		if uint(j) >= n || seen.Test(uint(j)) {
			return false
		}
		seen.Set(uint(j))
	}
	return seen.Count() == n
}
