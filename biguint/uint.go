// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package biguint implements the fixed-width unsigned integer and
// Montgomery arithmetic primitives that every ring, group, and curve in
// this module is built from.
//
// A BigUint's width is a property of the instance rather than of the Go
// type: each Uint carries a declared bit width fixed at construction and
// never grows, and every constant-time operation below runs in a time
// that depends only on that declared width, never on the value held.
// This is the "runtime-sized width, caller-declared upper bound" strategy
// called for when the host language lacks compile-time-sized integers.
package biguint

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/go-mrtd/crypto9303/mrtderr"
)

// wordBits is the limb width used throughout this package.
const wordBits = 64

// Uint is a fixed-width unsigned integer: limbs holds ceil(bits/64)
// 64-bit words in little-endian order (limbs[0] is least significant).
// The value is always < 2^bits; bits is fixed at construction.
type Uint struct {
	limbs []uint64
	bits  int
}

// numLimbs returns the number of 64-bit limbs needed to hold bits.
func numLimbs(bits int) int {
	return (bits + wordBits - 1) / wordBits
}

// New returns the zero value of the given declared bit width.
func New(bits int) *Uint {
	return &Uint{limbs: make([]uint64, numLimbs(bits)), bits: bits}
}

// Bits returns the declared bit width of u. Every constant-time loop over
// u runs for exactly this many iterations, regardless of u's value.
func (u *Uint) Bits() int {
	return u.bits
}

// mask clears any bits above the declared width in the top limb, which
// every constructor must call before returning.
func (u *Uint) mask() {
	extra := u.bits % wordBits
	if extra == 0 {
		return
	}
	top := len(u.limbs) - 1
	u.limbs[top] &= (uint64(1) << extra) - 1
}

// FromBytes interprets b as a big-endian unsigned integer and returns it
// as a Uint of the declared bit width, truncating silently if b encodes a
// value wider than bits (callers that care about overflow must check
// beforehand; the DER codecs do).
func FromBytes(bits int, b []byte) *Uint {
	u := New(bits)
	for i, limbIdx := 0, 0; i < len(b); {
		// Walk b from the least-significant byte.
		byteIdx := len(b) - 1 - i
		limbIdx = i / 8
		if limbIdx >= len(u.limbs) {
			break
		}
		u.limbs[limbIdx] |= uint64(b[byteIdx]) << (8 * uint(i%8))
		i++
	}
	u.mask()
	return u
}

// Bytes returns u as a big-endian byte slice of fixed length
// ceil(bits/8), per the BSI TR-03111 and ICAO 9303-11 fixed-length
// integer encodings.
func (u *Uint) Bytes() []byte {
	byteLen := (u.bits + 7) / 8
	out := make([]byte, byteLen)
	for i := 0; i < byteLen; i++ {
		limbIdx := i / 8
		shift := 8 * uint(i%8)
		out[byteLen-1-i] = byte(u.limbs[limbIdx] >> shift)
	}
	return out
}

// FromBig converts a non-negative math/big integer into a Uint of the
// declared bit width. Used only for constructing public, non-secret
// constants (named curve parameters, test vectors) and for the
// variable-time helpers (InvMod, SqrtMont, Random) that are explicitly
// permitted to consult math/big per the modular-inverse contract.
func FromBig(bits int, x *big.Int) *Uint {
	if x.Sign() < 0 {
		panic("biguint: FromBig given a negative integer")
	}
	return FromBytes(bits, x.Bytes())
}

// BigInt converts u to a math/big integer.
func (u *Uint) BigInt() *big.Int {
	return new(big.Int).SetBytes(u.Bytes())
}

// IsZero reports whether u == 0.
func (u *Uint) IsZero() bool {
	return limbsIsZero(u.limbs)
}

// Equal is the constant-time equality predicate required by the data
// model: running time depends only on the shared declared bit width, not
// on the values compared.
func (u *Uint) Equal(v *Uint) bool {
	if u.bits != v.bits {
		panic("biguint: Equal on mismatched widths")
	}
	return limbsEqual(u.limbs, v.limbs) == 1
}

// Cmp returns -1, 0, or 1 as u <, ==, > v. Unlike Equal this is not
// constant time and must only be used on non-secret values (modulus
// comparisons, codec bounds checks).
func (u *Uint) Cmp(v *Uint) int {
	return limbsCmp(u.limbs, v.limbs)
}

// ConditionalSelect returns x if choice == 1 or y if choice == 0 without
// branching on choice, per the dedicated selector primitive required by
// the design notes.
func ConditionalSelect(x, y *Uint, choice uint64) *Uint {
	if x.bits != y.bits {
		panic("biguint: ConditionalSelect on mismatched widths")
	}
	out := New(x.bits)
	limbsSelect(out.limbs, x.limbs, y.limbs, choice)
	return out
}

// RNG is the caller-supplied cryptographically secure random source: an
// io.Reader that fills a byte buffer. It has no method of its own for
// drawing a bounded integer; Random does that by rejection sampling over
// bytes read from it.
type RNG interface {
	io.Reader
}

// DefaultRNG is crypto/rand's system CSPRNG, suitable as the RNG
// implementation for callers that do not need to inject a test double.
var DefaultRNG RNG = rand.Reader

// Random draws a uniform integer in [0, max] (inclusive) from rng via
// rejection sampling: bits above max's bit length are masked before the
// comparison, and samples that land above max are discarded and redrawn.
func Random(rng RNG, max *Uint) (*Uint, error) {
	if max.IsZero() {
		return New(max.bits), nil
	}
	buf := make([]byte, len(max.limbs)*8)
	maxBitLen := max.BigInt().BitLen()
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, mrtderr.New(mrtderr.ArithmeticFailure, "biguint: random source failed: %v", err)
		}
		cand := New(max.bits)
		for i := range cand.limbs {
			cand.limbs[i] = uint64(buf[8*i]) | uint64(buf[8*i+1])<<8 |
				uint64(buf[8*i+2])<<16 | uint64(buf[8*i+3])<<24 |
				uint64(buf[8*i+4])<<32 | uint64(buf[8*i+5])<<40 |
				uint64(buf[8*i+6])<<48 | uint64(buf[8*i+7])<<56
		}
		for i := range cand.limbs {
			if lo := i * wordBits; lo >= maxBitLen {
				cand.limbs[i] = 0
			} else if maxBitLen-lo < wordBits {
				cand.limbs[i] &= (uint64(1) << uint(maxBitLen-lo)) - 1
			}
		}
		if cand.Cmp(max) <= 0 {
			return cand, nil
		}
	}
}
