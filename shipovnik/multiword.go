package shipovnik

// Custom bignum implementation.
//
// Big integers are unsigned, represented as sequences of 32-bit words in
// low-to-high order. The backing slice is allocated once with a fixed
// capacity; the significant length (size) is tracked separately, and
// there are no zero words beyond it once normalized. No operation ever
// grows the backing slice: exceeding the capacity is reported as
// ErrCapacity.

type multiword struct {
	words []uint32
	size  int
}

// Allocate a new big integer (value zero) with room for capacity words.
func new_multiword(capacity int) *multiword {
	return &multiword{words: make([]uint32, capacity)}
}

func (m *multiword) capacity() int {
	return len(m.words)
}

// Set the value to a single word.
func (m *multiword) set_word(x uint32) {
	m.words[0] = x
	m.size = 1
	m.normalize()
}

// Set the value from big-endian bytes; the length of src must be a
// multiple of 4.
func (m *multiword) set_bytes(src []byte) error {
	nw := len(src) >> 2
	if nw > len(m.words) {
		return ErrCapacity
	}
	for i := 0; i < nw; i++ {
		k := (nw - 1 - i) << 2
		m.words[i] = (uint32(src[k]) << 24) | (uint32(src[k+1]) << 16) |
			(uint32(src[k+2]) << 8) | uint32(src[k+3])
	}
	m.size = nw
	m.normalize()
	return nil
}

// Drop leading zero words.
func (m *multiword) normalize() {
	for m.size > 0 && m.words[m.size-1] == 0 {
		m.size--
	}
}

func (m *multiword) is_zero() bool {
	return m.size == 0
}

// Multiply the big integer with a single word x. If the product needs
// one more word and the capacity does not allow it, ErrCapacity is
// returned and the value is unspecified.
func (m *multiword) mul_word(x uint32) error {
	cc := uint32(0)
	for i := 0; i < m.size; i++ {
		z := uint64(m.words[i])*uint64(x) + uint64(cc)
		m.words[i] = uint32(z)
		cc = uint32(z >> 32)
	}
	if cc == 0 {
		if x == 0 {
			m.size = 0
		}
		return nil
	}
	if m.size >= len(m.words) {
		return ErrCapacity
	}
	m.words[m.size] = cc
	m.size++
	return nil
}

// floor(2^32 / 3); since 2^32 - 1 is a multiple of 3, this is also
// (2^32 - 1) / 3.
const recip3 = uint32((uint64(1) << 32) / 3)

// Divide the big integer d by 3. The quotient is written in q (which
// may not be d); the remainder is returned. The quotient capacity must
// allow the significant length of d.
//
// Instead of a division, each step multiplies the current two-word
// chunk by floor(2^32/3) and keeps the high word; the estimate is at
// most 1 below the true quotient, hence the remainder is lower than 6
// and one conditional correction suffices.
func (d *multiword) div3(q *multiword) (uint32, error) {
	n := d.size
	if n > len(q.words) {
		return 0, ErrCapacity
	}
	if n == 0 {
		q.size = 0
		return 0, nil
	}
	r := uint32(0)
	for i := n - 1; i >= 0; i-- {
		c := (uint64(r) << 32) | uint64(d.words[i])
		z := uint32((c * uint64(recip3)) >> 32)
		r = uint32(c - uint64(z)*3)
		// r < 6; subtract 3 if needed, without a branch.
		m := ((r - 3) >> 31) - 1
		r -= 3 & m
		z += 1 & m
		q.words[i] = z
	}
	if d.words[n-1] >= 3 {
		q.size = n
	} else {
		q.size = n - 1
	}
	q.normalize()
	return r, nil
}

// Copy the value of m into dst. ErrCapacity is returned if dst is too
// small for the significant length of m.
func (m *multiword) copy_to(dst *multiword) error {
	if m.size > len(dst.words) {
		return ErrCapacity
	}
	copy(dst.words, m.words[:m.size])
	dst.size = m.size
	return nil
}

// Shift right by a whole number of words.
func (m *multiword) shift_words(k int) {
	if k >= m.size {
		m.size = 0
		return
	}
	copy(m.words, m.words[k:m.size])
	m.size -= k
	m.normalize()
}
