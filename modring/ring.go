// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modring implements the ring of integers modulo an odd prime,
// with elements held internally in Montgomery form.
package modring

import (
	"math/big"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// Ring is an immutable descriptor for Z/pZ: the modulus together with its
// precomputed Montgomery constants. A Ring is created once from a modulus
// and never mutated; every Elem that references it does so by pointer, so
// two elements may only be combined when they share the same *Ring.
type Ring struct {
	modulus *biguint.Uint
	r       *biguint.Uint // R = 2^(64*limbs) mod p
	r2      *biguint.Uint // R^2 mod p
	r3      *biguint.Uint // R^3 mod p
	pInv    uint64        // -p[0]^-1 mod 2^64
	bits    int
}

// New builds a Ring from an odd modulus p > 1, deriving its Montgomery
// constants. Construction failures (even modulus, modulus <= 1) are
// ParameterInvalid: they indicate a programmer error building a static
// table, not a runtime condition callers should expect to recover from.
func New(p *biguint.Uint) (*Ring, error) {
	pBig := p.BigInt()
	if pBig.Sign() <= 0 || pBig.Cmp(big.NewInt(1)) == 0 {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "modring: modulus must be > 1")
	}
	if pBig.Bit(0) == 0 {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "modring: modulus must be odd")
	}
	r, r2, r3, pInv := biguint.RingParameters(p)
	return &Ring{modulus: p, r: r, r2: r2, r3: r3, pInv: pInv, bits: p.Bits()}, nil
}

// Modulus returns the ring's prime modulus.
func (ring *Ring) Modulus() *biguint.Uint {
	return ring.modulus
}

// Bits returns the declared bit width shared by every element of ring.
func (ring *Ring) Bits() int {
	return ring.bits
}

// sameRing panics on a programmer error: elements from different rings
// combined in one operation.
func sameRing(a, b *Ring) {
	if a != b {
		panic("modring: elements belong to different rings")
	}
}

// Elem is a ring element held in Montgomery form: value = v*R mod p for
// the element's logical value v. Invariant: value < p.
type Elem struct {
	ring  *Ring
	value *biguint.Uint
}

// Ring returns the ring e belongs to.
func (e *Elem) Ring() *Ring {
	return e.ring
}

// From reduces x modulo ring's modulus and converts it into Montgomery
// form.
func From(ring *Ring, x *biguint.Uint) *Elem {
	reduced := biguint.FromBig(ring.bits, new(big.Int).Mod(x.BigInt(), ring.modulus.BigInt()))
	return &Elem{ring: ring, value: biguint.MulREDC(reduced, ring.r2, ring.modulus, ring.pInv)}
}

// FromU64 is shorthand for From with a small constant.
func FromU64(ring *Ring, k uint64) *Elem {
	return From(ring, biguint.FromBig(ring.bits, new(big.Int).SetUint64(k)))
}

// FromMontgomery is a trusted constructor that wraps a value already known
// to be in Montgomery form (raw < p). Callers that violate the invariant
// get undefined arithmetic results; this mirrors a field-element type
// exposing both a validating SetBytes and a trusted raw Set.
func FromMontgomery(ring *Ring, raw *biguint.Uint) *Elem {
	return &Elem{ring: ring, value: raw}
}

// ToUint converts e back to a plain (non-Montgomery) integer: multiplying
// the Montgomery-form value by the plain integer 1 strips one factor of
// R via the REDC reduction.
func (e *Elem) ToUint() *biguint.Uint {
	one := biguint.FromBig(e.ring.bits, big.NewInt(1))
	return biguint.MulREDC(e.value, one, e.ring.modulus, e.ring.pInv)
}

// Add returns e + x.
func (e *Elem) Add(x *Elem) *Elem {
	sameRing(e.ring, x.ring)
	return &Elem{ring: e.ring, value: biguint.AddMod(e.value, x.value, e.ring.modulus)}
}

// Sub returns e - x.
func (e *Elem) Sub(x *Elem) *Elem {
	sameRing(e.ring, x.ring)
	return &Elem{ring: e.ring, value: biguint.SubMod(e.value, x.value, e.ring.modulus)}
}

// Mul returns e * x.
func (e *Elem) Mul(x *Elem) *Elem {
	sameRing(e.ring, x.ring)
	return &Elem{ring: e.ring, value: biguint.MulREDC(e.value, x.value, e.ring.modulus, e.ring.pInv)}
}

// Square returns e * e.
func (e *Elem) Square() *Elem {
	return &Elem{ring: e.ring, value: biguint.SquareREDC(e.value, e.ring.modulus, e.ring.pInv)}
}

// Neg returns -e.
func (e *Elem) Neg() *Elem {
	zero := &Elem{ring: e.ring, value: biguint.New(e.ring.bits)}
	return zero.Sub(e)
}

// IsZero reports whether e == 0.
func (e *Elem) IsZero() bool {
	return e.value.IsZero()
}

// Equal is the constant-time equality predicate: since the in-memory
// representation is the Montgomery form, equality of two elements of the
// same ring is a direct constant-time limb comparison.
func (e *Elem) Equal(x *Elem) bool {
	sameRing(e.ring, x.ring)
	return e.value.Equal(x.value)
}

// Inv returns e^-1, or ok == false when e == 0.
func (e *Elem) Inv() (inv *Elem, ok bool) {
	if e.IsZero() {
		return nil, false
	}
	plain := e.ToUint()
	plainInv, ok := biguint.InvMod(plain, e.ring.modulus)
	if !ok {
		return nil, false
	}
	return From(e.ring, plainInv), true
}

// Div returns e / x (= e * x^-1), or ok == false when x == 0.
func (e *Elem) Div(x *Elem) (quot *Elem, ok bool) {
	sameRing(e.ring, x.ring)
	xInv, ok := x.Inv()
	if !ok {
		return nil, false
	}
	return e.Mul(xInv), true
}

// Pow raises e to a small public exponent, variable time. Used only with
// exponents that are not secret (e.g. fixed protocol constants).
func (e *Elem) Pow(k uint) *Elem {
	result := FromU64(e.ring, 1)
	base := e
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		k >>= 1
	}
	return result
}

// PowCT raises e to exp using a constant-time square-and-conditional-
// multiply loop that runs for exactly exp.Bits() iterations regardless of
// exp's value. Use this, not Pow, whenever exp may be a secret scalar.
func (e *Elem) PowCT(exp *biguint.Uint) *Elem {
	result := FromU64(e.ring, 1)
	base := e
	expBytes := exp.Bytes()
	bitLen := exp.Bits()
	for i := bitLen - 1; i >= 0; i-- {
		byteIdx := len(expBytes) - 1 - i/8
		bit := uint64((expBytes[byteIdx] >> uint(i%8)) & 1)
		squared := result.Square()
		multiplied := squared.Mul(base)
		result = selectElem(multiplied, squared, bit)
	}
	return result
}

// selectElem is the constant-time element selector PowCT relies on.
func selectElem(x, y *Elem, choice uint64) *Elem {
	sameRing(x.ring, y.ring)
	return &Elem{ring: x.ring, value: biguint.ConditionalSelect(x.value, y.value, choice)}
}

// Select is the exported constant-time conditional select between two
// elements of the same ring.
func Select(x, y *Elem, choice uint64) *Elem {
	return selectElem(x, y, choice)
}

// Sqrt returns a square root of e, delegating to SqrtMont.
func (e *Elem) Sqrt() (*Elem, error) {
	root, err := biguint.SqrtMont(e.value, e.ring.modulus, e.ring.pInv)
	if err != nil {
		return nil, err
	}
	return &Elem{ring: e.ring, value: root}, nil
}
