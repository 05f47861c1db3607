// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bsi3

import (
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/params"
)

func bigFromHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bsi3: bad test hex literal: " + s)
	}
	return v
}

func secp256r1(t *testing.T) *curve.Curve {
	t.Helper()
	c, err := params.Secp256r1()
	if err != nil {
		t.Fatalf("Secp256r1: %v", err)
	}
	return c
}

// TestPointRoundTripUncompressedAndCompressed checks that, for an
// on-curve point, uncompressed encoding is 65 bytes starting 0x04,
// compressed is 33 bytes starting 0x02/0x03, and either decodes back to
// the original point.
func TestPointRoundTripUncompressedAndCompressed(t *testing.T) {
	c := secp256r1(t)
	g, ok := c.Generator().(curve.Point)
	if !ok {
		t.Fatal("generator is not a curve.Point")
	}

	uncompressed := EncodePointUncompressed(g)
	if len(uncompressed) != 65 || uncompressed[0] != 0x04 {
		t.Fatalf("uncompressed encoding shape: got %d bytes, leading 0x%02x", len(uncompressed), uncompressed[0])
	}
	decodedU, err := DecodePoint(c, uncompressed)
	if err != nil {
		t.Fatalf("decode uncompressed: %v", err)
	}
	if !decodedU.Equal(g) {
		t.Error("uncompressed round trip did not recover the original point")
	}

	compressed := EncodePointCompressed(g)
	if len(compressed) != 33 || (compressed[0] != 0x02 && compressed[0] != 0x03) {
		t.Fatalf("compressed encoding shape: got %d bytes, leading 0x%02x", len(compressed), compressed[0])
	}
	decodedC, err := DecodePoint(c, compressed)
	if err != nil {
		t.Fatalf("decode compressed: %v", err)
	}
	if !decodedC.Equal(g) {
		t.Error("compressed round trip did not recover the original point")
	}
}

// TestInfinityRoundTrip checks the infinity case: encoding yields the
// single byte 0x00 and decoding 0x00 yields infinity.
func TestInfinityRoundTrip(t *testing.T) {
	c := secp256r1(t)
	inf := c.Infinity()

	if got := EncodePointUncompressed(inf); len(got) != 1 || got[0] != 0x00 {
		t.Fatalf("infinity encoding: got %x", got)
	}
	if got := EncodePointCompressed(inf); len(got) != 1 || got[0] != 0x00 {
		t.Fatalf("infinity compressed encoding: got %x", got)
	}

	decoded, err := DecodePoint(c, []byte{0x00})
	if err != nil {
		t.Fatalf("decode infinity: %v", err)
	}
	if !decoded.IsInfinity() {
		t.Error("decoding 0x00 did not yield infinity")
	}
}

func TestDecodePointRejectsUnknownTag(t *testing.T) {
	c := secp256r1(t)
	_, err := DecodePoint(c, []byte{0x05, 0x01})
	if err == nil {
		t.Fatal("expected an error for an unrecognized leading byte")
	}
}

func TestFieldElementRoundTrip(t *testing.T) {
	c := secp256r1(t)
	x := biguint.FromBig(256, bigFromHex("abcdef0123456789"))
	elem, err := DecodeFieldElement(c.BaseField, EncodeInteger(x, FieldElementByteLen(c.BaseField)))
	if err != nil {
		t.Fatalf("DecodeFieldElement: %v", err)
	}
	got := EncodeFieldElement(elem)
	want := EncodeInteger(x, FieldElementByteLen(c.BaseField))
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d mismatch: got 0x%02x want 0x%02x", i, got[i], want[i])
		}
	}
}
