package shipovnik

import (
	"math/big"
	"testing"
)

// Reference challenge derivation with math/big.
func ref_challenge(h []byte) []uint8 {
	z := new(big.Int).SetBytes(h)
	p := new(big.Int).Exp(big.NewInt(3), big.NewInt(DELTA), nil)
	z.Mul(z, p)
	z.Rsh(z, 512)
	b := make([]uint8, DELTA)
	three := big.NewInt(3)
	r := new(big.Int)
	for i := DELTA - 1; i >= 0; i-- {
		z.DivMod(z, three, r)
		b[i] = uint8(r.Int64())
	}
	return b
}

func challenge_of(t *testing.T, h []byte) []uint8 {
	hp, err := h_3_delta_shift(h)
	if err != nil {
		t.Fatal(err)
	}
	b := make([]uint8, DELTA)
	if err := h_to_ternary_vec(hp, b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestChallengeZero(t *testing.T) {
	var h [HashSize]byte
	b := challenge_of(t, h[:])
	for i, x := range b {
		if x != 0 {
			t.Fatalf("ERR: digit %d = %d for the zero hash", i, x)
		}
	}
}

func TestChallengeReference(t *testing.T) {
	var h [HashSize]byte
	for k := 0; k < 200; k++ {
		switch k {
		case 0:
			for i := range h {
				h[i] = 0xFF
			}
		case 1:
			clear(h[:])
			h[HashSize-1] = 1
		case 2:
			clear(h[:])
			h[0] = 0x80
		default:
			NewSeededReader([]byte{byte(k), byte(k >> 8), 0x55}).Read(h[:])
		}
		b := challenge_of(t, h[:])
		ref := ref_challenge(h[:])
		for i := 0; i < DELTA; i++ {
			if b[i] > 2 {
				t.Fatalf("ERR: digit out of range (k=%d, i=%d)", k, i)
			}
			if b[i] != ref[i] {
				t.Fatalf("ERR: digit mismatch (k=%d, i=%d): %d vs %d",
					k, i, b[i], ref[i])
			}
		}
	}
}

func TestChallengeKeepsInput(t *testing.T) {
	var h [HashSize]byte
	NewSeededReader([]byte("keep")).Read(h[:])
	hp, err := h_3_delta_shift(h[:])
	if err != nil {
		t.Fatal(err)
	}
	before := mw_to_big(hp)
	b := make([]uint8, DELTA)
	if err := h_to_ternary_vec(hp, b); err != nil {
		t.Fatal(err)
	}
	if mw_to_big(hp).Cmp(before) != 0 {
		t.Fatalf("ERR: input value modified")
	}

	// A value too large for the digit count is an error.
	if err := h_to_ternary_vec(hp, make([]uint8, 10)); err == nil {
		t.Fatalf("ERR: oversized value accepted")
	}
}

func TestChallengeDistribution(t *testing.T) {
	// Rough sanity check: over many hashes, each digit value shows up
	// about one third of the time.
	var cnt [3]int
	var h [HashSize]byte
	r := NewSeededReader([]byte("distribution"))
	for k := 0; k < 100; k++ {
		r.Read(h[:])
		for _, x := range challenge_of(t, h[:]) {
			cnt[x]++
		}
	}
	total := 100 * DELTA
	for v, c := range cnt {
		if c < total/3-total/20 || c > total/3+total/20 {
			t.Fatalf("ERR: digit %d appears %d times out of %d", v, c, total)
		}
	}
}
