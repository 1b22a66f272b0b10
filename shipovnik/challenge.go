package shipovnik

// Challenge derivation: the 64-byte hash h of the message and the
// commitments is converted into DELTA ternary digits. With H the
// big-endian integer value of h, we compute H' = floor(H*3^DELTA / 2^512),
// which is uniform over [0,3^DELTA-1] (up to a negligible bias) when H
// is uniform, and then write H' in base 3, most significant digit first.

// Largest power of 3 that fits in a 32-bit word.
const pow3_20 = uint32(3486784401)

// Words in the hash value.
const hashWords = HashSize / 4

// Capacity of the multiword integers used for the conversion: the hash
// words, plus enough for 3^DELTA (DELTA*log2(3) < 2*DELTA bits).
const challengeCap = hashWords + (DELTA*2)/32

// Compute H' = (h * 3^DELTA) >> 512 (h is interpreted in big-endian).
func h_3_delta_shift(h []byte) (*multiword, error) {
	m := new_multiword(challengeCap)
	if err := m.set_bytes(h[:HashSize]); err != nil {
		return nil, err
	}
	for i := 0; i < DELTA/20; i++ {
		if err := m.mul_word(pow3_20); err != nil {
			return nil, err
		}
	}
	leftover := uint32(1)
	for i := 0; i < DELTA%20; i++ {
		leftover *= 3
	}
	if err := m.mul_word(leftover); err != nil {
		return nil, err
	}
	m.shift_words(hashWords)
	return m, nil
}

// Write the base-3 representation of h into b (DELTA digits, most
// significant first). Leading digits that are not reached stay at zero.
// The value h is not modified. ErrEncoding is returned if the value does
// not fit on len(b) digits.
func h_to_ternary_vec(h *multiword, b []uint8) error {
	clear(b)
	a := new_multiword(h.capacity())
	t := new_multiword(h.capacity())
	if err := h.copy_to(a); err != nil {
		return err
	}
	i := len(b) - 1
	for !a.is_zero() {
		if i < 0 {
			return ErrEncoding
		}
		r, err := a.div3(t)
		if err != nil {
			return err
		}
		a, t = t, a
		b[i] = uint8(r)
		i--
	}
	return nil
}

// Derive the DELTA challenge digits from the message and the
// commitments block.
func derive_challenge(msg []byte, commitments []byte, b []uint8) error {
	var h [HashSize]byte
	hash512(h[:], msg, commitments)
	hp, err := h_3_delta_shift(h[:])
	if err != nil {
		return err
	}
	return h_to_ternary_vec(hp, b)
}
