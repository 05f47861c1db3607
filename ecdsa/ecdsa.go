// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa implements ECDSA signature verification. Signature
// generation is out of scope: this reader only ever needs to check
// signatures it receives, never produce its own.
package ecdsa

import (
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// Signature is a raw (r, s) ECDSA signature, each held as an element of
// the curve's scalar field.
type Signature struct {
	R, S *modring.Elem
}

// Verify checks an ECDSA signature: given the public key point Q on c,
// the message hash e (already reduced into the scalar field), and
// signature (r, s), compute w = s^-1, u1 = e*w, u2 = r*w,
// X = [u1]G + [u2]Q, and reject unless X != infinity and x(X) mod n == r.
//
// Verification uses the variable-time Inv and the same ScalarMul as
// secret-scalar code: every input here (the public key, the hash, and the
// signature) is public, so the constant-time discipline required for
// secret scalars does not apply.
func Verify(c *curve.Curve, q curve.Point, e *modring.Elem, sig Signature) error {
	if sig.R.IsZero() || sig.S.IsZero() {
		return mrtderr.New(mrtderr.SignatureInvalid, "ecdsa: r or s is zero")
	}
	w, ok := sig.S.Inv()
	if !ok {
		return mrtderr.New(mrtderr.SignatureInvalid, "ecdsa: s is not invertible")
	}
	u1 := e.Mul(w)
	u2 := sig.R.Mul(w)

	g, ok := c.Generator().(curve.Point)
	if !ok {
		return mrtderr.New(mrtderr.ParameterInvalid, "ecdsa: curve generator is not a curve.Point")
	}

	p1 := c.ScalarMul(u1.ToUint(), g)
	p2 := c.ScalarMul(u2.ToUint(), q)
	x := p1.Add(p2)
	if x.IsInfinity() {
		return mrtderr.New(mrtderr.SignatureInvalid, "ecdsa: X == infinity")
	}

	// x(X) mod n == r: x(X) lives in the base field, r in the scalar
	// field, so the comparison is done as plain integers reduced modulo
	// the curve order n.
	xInt := x.X().ToUint().BigInt()
	xInt.Mod(xInt, c.Order().BigInt())
	rInt := sig.R.ToUint().BigInt()
	if xInt.Cmp(rInt) != 0 {
		return mrtderr.New(mrtderr.SignatureInvalid, "ecdsa: x(X) mod n != r")
	}
	return nil
}

// HashToScalar reduces a message digest into the curve's scalar field,
// truncating to the field's bit length if the digest is wider, per the
// usual ECDSA "leftmost bits of the hash" convention.
func HashToScalar(c *curve.Curve, digest []byte) *modring.Elem {
	bitLen := c.ScalarField.Bits()
	byteLen := (bitLen + 7) / 8
	if len(digest) > byteLen {
		digest = digest[:byteLen]
	}
	u := biguint.FromBytes(bitLen, digest)
	return modring.From(c.ScalarField, u)
}

// VerifyDER decodes a DER SEQUENCE { r INTEGER, s INTEGER } signature,
// the wire shape real SOD and chip authentication signatures actually
// arrive in (grounded on original_source/src/crypto/ecdsa.rs, which
// decodes this wrapper before verifying), and then runs Verify.
func VerifyDER(c *curve.Curve, q curve.Point, e *modring.Elem, der []byte) error {
	in := cryptobyte.String(der)
	var seq cryptobyte.String
	if !in.ReadASN1(&seq, asn1.SEQUENCE) || !in.Empty() {
		return mrtderr.New(mrtderr.EncodingMalformed, "ecdsa: invalid DER signature SEQUENCE")
	}
	var rBytes, sBytes cryptobyte.String
	if !seq.ReadASN1(&rBytes, asn1.INTEGER) || !seq.ReadASN1(&sBytes, asn1.INTEGER) || !seq.Empty() {
		return mrtderr.New(mrtderr.EncodingMalformed, "ecdsa: invalid DER signature fields")
	}
	bitLen := c.ScalarField.Bits()
	r := modring.From(c.ScalarField, biguint.FromBytes(bitLen, trimSign(rBytes)))
	s := modring.From(c.ScalarField, biguint.FromBytes(bitLen, trimSign(sBytes)))
	return Verify(c, q, e, Signature{R: r, S: s})
}

// trimSign strips a single leading 0x00 sign-guard byte from a DER
// INTEGER's big-endian bytes, so a positive value whose top bit happened
// to be set decodes to the same magnitude.
func trimSign(b []byte) []byte {
	if len(b) > 1 && b[0] == 0x00 && b[1]&0x80 != 0 {
		return b[1:]
	}
	return b
}
