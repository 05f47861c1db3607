// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdh implements ECKA (EC Key Agreement, BSI TR-03111 §4.3.1)
// and its default-cofactor specialization ECDH, operating on a
// curve.Curve.
package ecdh

import (
	"math/big"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/codec/bsi3"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// Agree computes ECKA's shared point P = [h*skA]*QB over c, where h is
// the caller-supplied cofactor multiplier (pass c.Cofactor() for the
// standard TR-03111 rule, or biguint.FromBig(bits, big.NewInt(1)) for
// the default-cofactor ECDH case, see ECDH below). It fails with
// ArithmeticFailure if the result is the point at infinity.
//
// The cofactor multiplication is always applied here exactly as
// TR-03111 §4.3.1 prescribes: [h*sk]*Q, not [sk]*Q.
func Agree(c *curve.Curve, skA *biguint.Uint, qB curve.Point, h *biguint.Uint) (curve.Point, *modring.Elem, error) {
	exponent := combineScalarAndCofactor(skA, h)
	p := c.ScalarMul(exponent, qB)
	if p.IsInfinity() {
		return curve.Point{}, nil, mrtderr.New(mrtderr.ArithmeticFailure, "ecdh: shared point is the point at infinity")
	}
	return p, p.X(), nil
}

// combineScalarAndCofactor computes h*skA, declared at the sum of the two
// operands' bit widths so the product never wraps, before it feeds
// c.ScalarMul's own constant-time loop (sized to the declared width of
// that wider type, not to skA or h individually).
func combineScalarAndCofactor(skA, h *biguint.Uint) *biguint.Uint {
	bits := skA.Bits() + h.Bits()
	product := new(big.Int).Mul(skA.BigInt(), h.BigInt())
	return biguint.FromBig(bits, product)
}

// ECKAShared is ECKA's output pair: the shared point P and its
// x-coordinate x(P), which (encoded via the TR-03111 field element
// codec) is the shared secret Z fed onward to the key derivation
// function.
type ECKAShared struct {
	Point curve.Point
	Z     []byte
}

// ECKA computes Agree and immediately encodes x(P) as the TR-03111 Z
// byte string.
func ECKA(c *curve.Curve, skA *biguint.Uint, qB curve.Point, h *biguint.Uint) (ECKAShared, error) {
	p, x, err := Agree(c, skA, qB, h)
	if err != nil {
		return ECKAShared{}, err
	}
	return ECKAShared{Point: p, Z: bsi3.EncodeFieldElement(x)}, nil
}

// ECDH is the default-cofactor case of ECKA: cofactor 1 is used
// regardless of the curve's actual cofactor, matching plain Diffie-
// Hellman semantics for curves where the caller does not want the
// TR-03111 cofactor clearing applied.
func ECDH(c *curve.Curve, skA *biguint.Uint, qB curve.Point) (ECKAShared, error) {
	one := biguint.FromBig(1, big.NewInt(1))
	return ECKA(c, skA, qB, one)
}
