// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package biguint

import "math/bits"

// limbsAdd computes dst = a + b over equal-length little-endian limb slices
// and returns the carry out of the top limb. dst may alias a or b.
func limbsAdd(dst, a, b []uint64) uint64 {
	var carry uint64
	for i := range a {
		dst[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// limbsSub computes dst = a - b over equal-length little-endian limb slices
// and returns the borrow out of the top limb (1 if a < b). dst may alias a
// or b.
func limbsSub(dst, a, b []uint64) uint64 {
	var borrow uint64
	for i := range a {
		dst[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// limbsCmp returns -1, 0, or 1 as a < b, a == b, a > b, scanning from the
// most significant limb down. Equal-length inputs required.
func limbsCmp(a, b []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// limbsIsZero reports whether every limb is zero.
func limbsIsZero(a []uint64) bool {
	var acc uint64
	for _, w := range a {
		acc |= w
	}
	return acc == 0
}

// limbsSelect sets dst to x if choice == 1 or to y if choice == 0, without
// branching on choice. choice must be exactly 0 or 1; any other value
// produces an unspecified but still branch-free result. This is the
// dedicated constant-time selector the algebraic layers above are built on.
func limbsSelect(dst, x, y []uint64, choice uint64) {
	mask := -choice // all-ones if choice==1, all-zero if choice==0
	for i := range x {
		dst[i] = (x[i] & mask) | (y[i] &^ mask)
	}
}

// limbsCondSubtract subtracts m from a in constant time whenever the borrow
// out of an unconditional a-m is zero (i.e. a >= m), leaving a untouched
// otherwise. It runs the subtraction unconditionally and then selects
// between the two candidate results, so no branch depends on the outcome.
func limbsCondSubtract(a, m []uint64) {
	reduced := make([]uint64, len(a))
	borrow := limbsSub(reduced, a, m)
	// borrow == 1 means a < m, so the unconditional subtraction
	// underflowed and the original value a is the correct residue.
	limbsSelect(a, a, reduced, borrow)
}

// limbsEqual is the constant-time equality predicate over limb slices of
// equal length, returning a 0/1 mask without a short-circuiting comparison.
func limbsEqual(a, b []uint64) uint64 {
	var acc uint64
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	// acc == 0 iff all limbs matched. Turn that into a 0/1 mask without a
	// branch: OR-reduce into the low bit via the standard trick.
	acc |= acc >> 32
	acc |= acc >> 16
	acc |= acc >> 8
	acc |= acc >> 4
	acc |= acc >> 2
	acc |= acc >> 1
	return (acc & 1) ^ 1
}

// limbsMulFull computes the full double-width product of a and b, both
// little-endian limb slices of (possibly different) length, via schoolbook
// long multiplication. The result has length len(a)+len(b).
func limbsMulFull(a, b []uint64) []uint64 {
	result := make([]uint64, len(a)+len(b))
	for i, av := range a {
		var carry uint64
		for j, bv := range b {
			hi, lo := bits.Mul64(av, bv)
			sum, c1 := bits.Add64(result[i+j], lo, 0)
			sum, c2 := bits.Add64(sum, carry, 0)
			result[i+j] = sum
			carry = hi + c1 + c2
		}
		result[i+len(b)] += carry
	}
	return result
}
