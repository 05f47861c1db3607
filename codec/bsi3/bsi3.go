// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bsi3 implements the BSI TR-03111 §3 wire encodings for
// integers, field elements, and elliptic-curve points. Every decoder
// takes its ambient ring/curve as an explicit "parent" argument rather
// than reading it from the wire: the field or curve is never serialized
// inline with the element.
package bsi3

import (
	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// EncodeInteger encodes x as a big-endian byte string of exactly
// byteLen bytes, per TR-03111 3.1.2. Leading zeros pad the value up to
// byteLen; x must already fit (callers only ever call this with x drawn
// from a ring/field whose modulus sets byteLen).
func EncodeInteger(x *biguint.Uint, byteLen int) []byte {
	raw := x.Bytes()
	if len(raw) == byteLen {
		return raw
	}
	if len(raw) > byteLen {
		// Truncate to the low byteLen bytes: only reachable if the
		// caller declared a Uint wider than the ambient field, which
		// callers in this module never do.
		return raw[len(raw)-byteLen:]
	}
	out := make([]byte, byteLen)
	copy(out[byteLen-len(raw):], raw)
	return out
}

// DecodeInteger decodes a fixed-length big-endian integer of exactly
// byteLen bytes into a Uint of the given declared bit width.
func DecodeInteger(bits int, b []byte, byteLen int) (*biguint.Uint, error) {
	if len(b) != byteLen {
		return nil, mrtderr.New(mrtderr.EncodingMalformed,
			"bsi3: integer must be exactly %d bytes, got %d", byteLen, len(b))
	}
	return biguint.FromBytes(bits, b), nil
}

// FieldElementByteLen returns the fixed encoded length of an element of
// ring: the byte length of the field's modulus, per TR-03111 3.1.3.
func FieldElementByteLen(ring *modring.Ring) int {
	return (ring.Bits() + 7) / 8
}

// EncodeFieldElement encodes e as a fixed-length big-endian integer with
// length equal to the byte length of its field's modulus.
func EncodeFieldElement(e *modring.Elem) []byte {
	return EncodeInteger(e.ToUint(), FieldElementByteLen(e.Ring()))
}

// DecodeFieldElement decodes b into an element of ring, per TR-03111
// 3.1.3. ring is the explicit parent context the element does not carry
// on the wire.
func DecodeFieldElement(ring *modring.Ring, b []byte) (*modring.Elem, error) {
	u, err := DecodeInteger(ring.Bits(), b, FieldElementByteLen(ring))
	if err != nil {
		return nil, err
	}
	return modring.From(ring, u), nil
}

// Point-encoding leading bytes, per TR-03111 3.2.
const (
	tagInfinity     = 0x00
	tagUncompressed = 0x04
	tagCompressedEven = 0x02
	tagCompressedOdd  = 0x03
)

// EncodePointUncompressed encodes p as 0x04 || x || y, or the single byte
// 0x00 when p is the point at infinity.
func EncodePointUncompressed(p curve.Point) []byte {
	if p.IsInfinity() {
		return []byte{tagInfinity}
	}
	x := EncodeFieldElement(p.X())
	y := EncodeFieldElement(p.Y())
	out := make([]byte, 0, 1+len(x)+len(y))
	out = append(out, tagUncompressed)
	out = append(out, x...)
	out = append(out, y...)
	return out
}

// EncodePointCompressed encodes p as 0x02|0x03 || x (parity selecting the
// leading byte), or the single byte 0x00 for infinity.
func EncodePointCompressed(p curve.Point) []byte {
	if p.IsInfinity() {
		return []byte{tagInfinity}
	}
	x := EncodeFieldElement(p.X())
	tag := byte(tagCompressedEven)
	if isOdd(p.Y()) {
		tag = tagCompressedOdd
	}
	out := make([]byte, 0, 1+len(x))
	out = append(out, tag)
	out = append(out, x...)
	return out
}

// isOdd reports whether e's integer value is odd.
func isOdd(e *modring.Elem) bool {
	b := e.ToUint().Bytes()
	return b[len(b)-1]&1 == 1
}

// DecodePoint decodes b against c's base field, dispatching on the
// leading byte: 0x00 infinity, 0x04 uncompressed, 0x02/0x03 compressed
// (even/odd y, decompressed via curve.Curve.FromX).
func DecodePoint(c *curve.Curve, b []byte) (curve.Point, error) {
	if len(b) == 0 {
		return curve.Point{}, mrtderr.New(mrtderr.EncodingMalformed, "bsi3: empty point encoding")
	}
	feLen := FieldElementByteLen(c.BaseField)
	switch b[0] {
	case tagInfinity:
		if len(b) != 1 {
			return curve.Point{}, mrtderr.New(mrtderr.EncodingMalformed, "bsi3: trailing bytes after infinity tag")
		}
		return c.Infinity(), nil
	case tagUncompressed:
		if len(b) != 1+2*feLen {
			return curve.Point{}, mrtderr.New(mrtderr.EncodingMalformed, "bsi3: wrong length for uncompressed point")
		}
		x, err := DecodeFieldElement(c.BaseField, b[1:1+feLen])
		if err != nil {
			return curve.Point{}, err
		}
		y, err := DecodeFieldElement(c.BaseField, b[1+feLen:])
		if err != nil {
			return curve.Point{}, err
		}
		return c.FromAffine(x, y)
	case tagCompressedEven, tagCompressedOdd:
		if len(b) != 1+feLen {
			return curve.Point{}, mrtderr.New(mrtderr.EncodingMalformed, "bsi3: wrong length for compressed point")
		}
		x, err := DecodeFieldElement(c.BaseField, b[1:])
		if err != nil {
			return curve.Point{}, err
		}
		wantOdd := uint64(0)
		if b[0] == tagCompressedOdd {
			wantOdd = 1
		}
		return c.FromX(x, wantOdd)
	default:
		return curve.Point{}, mrtderr.New(mrtderr.EncodingMalformed, "bsi3: unrecognized point tag 0x%02x", b[0])
	}
}
