// Package bit provides single-bit operations on 64-bit unsigned integers.
// Positions are zero-based and must be in [0, 63].
package bit

// Set returns v with the bit at pos set.
func Set(v uint64, pos int) uint64 {
	return v | (uint64(1) << pos)
}

// Clear returns v with the bit at pos cleared.
func Clear(v uint64, pos int) uint64 {
	return v &^ (uint64(1) << pos)
}

// Toggle returns v with the bit at pos flipped.
func Toggle(v uint64, pos int) uint64 {
	return v ^ (uint64(1) << pos)
}

// Check returns 1 if the bit at pos is set, 0 otherwise.
func Check(v uint64, pos int) uint64 {
	return (v >> pos) & 1
}
