// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package biguint

import (
	"math/big"
	"math/bits"

	"github.com/go-mrtd/crypto9303/mrtderr"
)

// AddMod computes (a + b) mod p for a, b < p, via an overflow-and-
// conditional-subtract that never branches on the comparison outcome: both
// the raw sum and sum-p are computed unconditionally and the correct one is
// chosen with a constant-time select.
//
// Since a, b < p, the true sum is < 2p. When the n-limb addition overflows
// (carry == 1), the true sum is >= 2^(64n) > p and sum-p computed mod
// 2^(64n) (ignoring the subtraction's own borrow) already equals the
// correctly reduced residue; otherwise sum-p is the right answer exactly
// when sum >= p, i.e. when that subtraction does not borrow.
func AddMod(a, b, p *Uint) *Uint {
	n := len(p.limbs)
	sum := make([]uint64, n)
	carry := limbsAdd(sum, a.limbs, b.limbs)
	reduced := make([]uint64, n)
	borrow := limbsSub(reduced, sum, p.limbs)
	useReduced := carry | (1 ^ borrow)
	out := make([]uint64, n)
	limbsSelect(out, reduced, sum, useReduced)
	return &Uint{limbs: out, bits: p.bits}
}

// SubMod computes (a - b) mod p for a, b < p.
func SubMod(a, b, p *Uint) *Uint {
	n := len(p.limbs)
	diff := make([]uint64, n)
	borrow := limbsSub(diff, a.limbs, b.limbs)
	// If a < b the subtraction underflowed; add p back in using the same
	// add-then-select shape as the rest of the package.
	withP := make([]uint64, n)
	limbsAdd(withP, diff, p.limbs)
	limbsSelect(diff, withP, diff, borrow)
	return &Uint{limbs: diff, bits: p.bits}
}

// n0inv returns -p[0]^-1 mod 2^64, the single-word Montgomery constant
// used to cancel one limb per reduction round.
func n0inv(p0 uint64) uint64 {
	mod := new(big.Int).Lsh(big.NewInt(1), 64)
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(p0), mod)
	neg := new(big.Int).Sub(mod, inv)
	return neg.Uint64()
}

// montgomeryReduce reduces the double-width (plus two guard limbs) value t
// modulo p using pInv = n0inv(p[0]), per HAC Algorithm 14.32, and returns
// the single-width residue r = t * R^-1 mod p, r < p.
func montgomeryReduce(t, p []uint64, pInv uint64) []uint64 {
	n := len(p)
	for i := 0; i < n; i++ {
		m := t[i] * pInv
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(m, p[j])
			sum, c1 := bits.Add64(t[i+j], lo, 0)
			sum, c2 := bits.Add64(sum, carry, 0)
			t[i+j] = sum
			carry = hi + c1 + c2
		}
		idx := i + n
		sum, c := bits.Add64(t[idx], carry, 0)
		t[idx] = sum
		idx++
		for c != 0 && idx < len(t) {
			sum, c = bits.Add64(t[idx], c, 0)
			t[idx] = sum
			idx++
		}
	}
	result := make([]uint64, n)
	copy(result, t[n:2*n])
	// The true value t[n:] is < 2p but may spill into limb t[2n]; when it
	// does, result - p (mod 2^(64n)) is the residue, otherwise subtract p
	// only when it does not borrow. Same select shape as AddMod.
	reduced := make([]uint64, n)
	borrow := limbsSub(reduced, result, p)
	limbsSelect(result, reduced, result, t[2*n]|(1^borrow))
	return result
}

// MulREDC computes a*b*R^-1 mod p (Montgomery multiplication), given a, b
// < p, p odd, and pInv = n0inv(p[0]). The result is < p.
func MulREDC(a, b, p *Uint, pInv uint64) *Uint {
	n := len(p.limbs)
	raw := limbsMulFull(a.limbs, b.limbs)
	t := make([]uint64, 2*n+2)
	copy(t, raw)
	return &Uint{limbs: montgomeryReduce(t, p.limbs, pInv), bits: p.bits}
}

// SquareREDC computes a*a*R^-1 mod p. It is algorithmically identical to
// MulREDC(a, a, p, pInv); kept distinct per the component contract so
// callers that want a dedicated squaring entry point (as ModElement.Square
// does) have one, and so a future optimized squaring path has a home.
func SquareREDC(a, p *Uint, pInv uint64) *Uint {
	return MulREDC(a, a, p, pInv)
}

// RingParameters derives the Montgomery constants for modulus p: R = 2^(64n)
// mod p, R^2, R^3, and pInv = -p[0]^-1 mod 2^64. R is reduced directly
// from 2^(64n) with math/big, R^2 is R*R mod p, and R^3 is obtained from
// R^2 with one MulREDC.
func RingParameters(p *Uint) (r, r2, r3 *Uint, pInv uint64) {
	n := len(p.limbs)
	pInv = n0inv(p.limbs[0])

	// seed = 2^(64n) as a 2n-limb value with a single set bit, reduced mod
	// p by plain long division through math/big (this runs once per ring
	// construction on a public modulus, so reaching for math/big here is
	// a one-time non-secret derivation, not a hot-path primitive).
	one := big.NewInt(1)
	shift := uint(64 * n)
	rBig := new(big.Int).Lsh(one, shift)
	pBig := p.BigInt()
	rBig.Mod(rBig, pBig)
	r = FromBig(p.bits, rBig)

	r2Big := new(big.Int).Mul(rBig, rBig)
	r2Big.Mod(r2Big, pBig)
	r2 = FromBig(p.bits, r2Big)

	// R^3 mod p is derived from R^2 via MulREDC, interpreting R^2 itself
	// as a Montgomery-form operand: MulREDC(R^2, R^2, p) = R^2 * R^2 * R^-1
	// = R^3 mod p.
	r3 = MulREDC(r2, r2, p, pInv)

	return r, r2, r3, pInv
}

// InvMod returns a^-1 mod p, or ok == false when gcd(a, p) != 1. Per the
// contract this need not be constant time: it is defined only for use on
// non-secret values (ring construction, public-key validation).
func InvMod(a, p *Uint) (inv *Uint, ok bool) {
	aBig := a.BigInt()
	pBig := p.BigInt()
	invBig := new(big.Int).ModInverse(aBig, pBig)
	if invBig == nil {
		return nil, false
	}
	return FromBig(a.bits, invBig), true
}

// expMod computes base^exp mod p via square-and-multiply in plain
// (non-Montgomery) integer arithmetic, used internally to derive the
// closed-form square root exponents. Not constant time; exp here is
// always a small fixed public constant derived from p (e.g. (p+1)/4).
func expMod(base, exp, p *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, p)
}

// SqrtMont computes a modular square root of a (given in Montgomery form)
// with respect to p, returning it in Montgomery form. Only p ≡ 3 (mod 4)
// and p ≡ 5 (mod 8) are implemented via closed-form exponents; any other
// residue class reports AlgorithmUnsupported rather than falling back to
// the general Tonelli-Shanks loop.
func SqrtMont(a, p *Uint, pInv uint64) (*Uint, error) {
	pBig := p.BigInt()
	mod4 := new(big.Int).Mod(pBig, big.NewInt(4))
	mod8 := new(big.Int).Mod(pBig, big.NewInt(8))

	// Recover the plain-integer value of a by converting out of
	// Montgomery form: a_plain = MulREDC(a, 1, p) = a * R^-1 mod p.
	one := New(p.bits)
	one.limbs[0] = 1
	aPlain := MulREDC(a, one, p, pInv).BigInt()

	var rootBig *big.Int
	switch {
	case mod4.Cmp(big.NewInt(3)) == 0:
		// r = a^((p+1)/4) mod p
		exp := new(big.Int).Add(pBig, big.NewInt(1))
		exp.Rsh(exp, 2)
		rootBig = expMod(aPlain, exp, pBig)
	case mod8.Cmp(big.NewInt(5)) == 0:
		// Atkin's algorithm for p ≡ 5 (mod 8).
		exp := new(big.Int).Sub(pBig, big.NewInt(5))
		exp.Rsh(exp, 3)
		two := big.NewInt(2)
		v := expMod(new(big.Int).Mul(two, aPlain), exp, pBig)
		v.Mod(v, pBig)
		i := new(big.Int).Mul(two, aPlain)
		i.Mul(i, v)
		i.Mul(i, v)
		i.Mod(i, pBig)
		i.Sub(i, big.NewInt(1))
		r := new(big.Int).Mul(aPlain, v)
		r.Mul(r, i)
		r.Mod(r, pBig)
		rootBig = r
	default:
		return nil, mrtderr.New(mrtderr.AlgorithmUnsupported,
			"biguint: sqrt_mont unsupported for modulus not ≡ 3 mod 4 or ≡ 5 mod 8")
	}
	if rootBig.Sign() < 0 {
		rootBig.Add(rootBig, pBig)
	}
	// Verify before returning so callers never re-check: r*r ≡ a.
	check := new(big.Int).Mul(rootBig, rootBig)
	check.Mod(check, pBig)
	if check.Cmp(aPlain) != 0 {
		return nil, mrtderr.New(mrtderr.ArithmeticFailure, "biguint: sqrt_mont: a is not a quadratic residue")
	}
	rootPlain := FromBig(p.bits, rootBig)
	// Convert back into Montgomery form: root_mont = root_plain * R^2 * R^-1 = MulREDC(root_plain, R^2).
	_, r2Const, _, _ := RingParameters(p)
	return MulREDC(rootPlain, r2Const, p, pInv), nil
}
