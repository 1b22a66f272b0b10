package shipovnik

import (
	"encoding/binary"
	"io"
	"math/bits"
	"sync"

	"github.com/pkg/errors"
)

// Words (64-bit) per row of H'; the last word is zero-padded.
const rowWords = (rowBytes + 7) / 8

// Matrix is the public parity-check block H': K rows of N-K bits. The
// full parity-check matrix is [H' | I_K]; the identity block is never
// stored. A Matrix is immutable and safe for concurrent use.
type Matrix struct {
	// Rows as big-endian 64-bit words, rowWords per row.
	rows []uint64
}

// Public seed for the built-in matrix.
var defaultMatrixSeed = []byte("shipovnik/H'/2896-1448")

var (
	defaultMatrix     *Matrix
	defaultMatrixOnce sync.Once
)

// DefaultMatrix returns the built-in public matrix, expanded from a
// fixed public seed with ExpandMatrix.
func DefaultMatrix() *Matrix {
	defaultMatrixOnce.Do(func() {
		defaultMatrix = ExpandMatrix(defaultMatrixSeed)
	})
	return defaultMatrix
}

// ExpandMatrix derives a public matrix from a seed with SHAKE256. The
// same seed always yields the same matrix.
func ExpandMatrix(seed []byte) *Matrix {
	raw := make([]byte, MatrixSize)
	newSHAKE256x4(seed).Read(raw)
	return matrix_from_bytes(raw)
}

// LoadMatrix reads a raw public matrix (MatrixSize bytes: K rows of N-K
// bits, row after row, most significant bit first) from r. The reader
// must hold exactly MatrixSize bytes.
func LoadMatrix(r io.Reader) (*Matrix, error) {
	raw := make([]byte, MatrixSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.Wrap(err, "Truncated matrix")
	}
	var extra [1]byte
	switch n, err := io.ReadFull(r, extra[:]); {
	case n != 0:
		return nil, errors.Wrap(ErrEncoding, "Trailing data after matrix")
	case err != io.EOF:
		return nil, errors.Wrap(err, "Reading matrix")
	}
	return matrix_from_bytes(raw), nil
}

func matrix_from_bytes(raw []byte) *Matrix {
	m := &Matrix{rows: make([]uint64, K*rowWords)}
	var tmp [rowWords * 8]byte
	for i := 0; i < K; i++ {
		copy(tmp[:], raw[i*rowBytes:(i+1)*rowBytes])
		row := m.rows[i*rowWords : (i+1)*rowWords]
		for j := 0; j < rowWords; j++ {
			row[j] = binary.BigEndian.Uint64(tmp[j<<3:])
		}
	}
	return m
}

// Bytes returns the raw encoding of the matrix (MatrixSize bytes), in
// the format accepted by LoadMatrix.
func (m *Matrix) Bytes() []byte {
	raw := make([]byte, MatrixSize)
	var tmp [rowWords * 8]byte
	for i := 0; i < K; i++ {
		row := m.rows[i*rowWords : (i+1)*rowWords]
		for j := 0; j < rowWords; j++ {
			binary.BigEndian.PutUint64(tmp[j<<3:], row[j])
		}
		copy(raw[i*rowBytes:(i+1)*rowBytes], tmp[:rowBytes])
	}
	return raw
}

// Compute the syndrome of the bit vector e (SecretKeySize bytes) into
// dst (PublicKeySize bytes): bit i of dst is the parity of
// (row i of H') AND (first N-K bits of e), XOR bit N-K+i of e.
func (m *Matrix) syndrome(e []byte, dst []byte) {
	var ew [rowWords]uint64
	var tmp [rowWords * 8]byte
	copy(tmp[:], e[:rowBytes])
	for j := 0; j < rowWords; j++ {
		ew[j] = binary.BigEndian.Uint64(tmp[j<<3:])
	}
	wipe(tmp[:])

	tail := e[rowBytes:]
	for i := 0; i < K; i += 8 {
		x := byte(0)
		for k := 0; k < 8; k++ {
			row := m.rows[(i+k)*rowWords : (i+k+1)*rowWords]
			w := uint64(0)
			for j := 0; j < rowWords; j++ {
				w ^= row[j] & ew[j]
			}
			x = (x << 1) | byte(bits.OnesCount64(w)&1)
		}
		dst[i>>3] = x ^ tail[i>>3]
	}
	clear(ew[:])
}
