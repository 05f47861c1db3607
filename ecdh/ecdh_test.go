// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdh

import (
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/params"
)

func generatorPoint(t *testing.T, c *curve.Curve) curve.Point {
	t.Helper()
	g, ok := c.Generator().(curve.Point)
	if !ok {
		t.Fatal("curve generator is not a curve.Point")
	}
	return g
}

// TestECDHCorrectness checks the commutativity Diffie-Hellman relies on:
// with fixed scalars a, b, [a]([b]G) == [b]([a]G).
func TestECDHCorrectness(t *testing.T) {
	c, err := params.Secp256r1()
	if err != nil {
		t.Fatalf("Secp256r1: %v", err)
	}
	g := generatorPoint(t, c)

	a := biguint.FromBig(256, big.NewInt(12345))
	b := biguint.FromBig(256, big.NewInt(67890))

	QA := c.ScalarMul(a, g)
	QB := c.ScalarMul(b, g)

	left := c.ScalarMul(a, QB)
	right := c.ScalarMul(b, QA)
	if !left.Equal(right) {
		t.Error("[a]([b]G) != [b]([a]G)")
	}
}

// TestECDHSharedSecretAgrees drives the full ECDH helper end to end:
// both parties derive the same Z byte string from their counterpart's
// public point.
func TestECDHSharedSecretAgrees(t *testing.T) {
	c, err := params.Secp256r1()
	if err != nil {
		t.Fatalf("Secp256r1: %v", err)
	}
	g := generatorPoint(t, c)

	skA := biguint.FromBig(256, big.NewInt(987654321))
	skB := biguint.FromBig(256, big.NewInt(123456789))

	QA := c.ScalarMul(skA, g)
	QB := c.ScalarMul(skB, g)

	sharedA, err := ECDH(c, skA, QB)
	if err != nil {
		t.Fatalf("ECDH (party A): %v", err)
	}
	sharedB, err := ECDH(c, skB, QA)
	if err != nil {
		t.Fatalf("ECDH (party B): %v", err)
	}

	if len(sharedA.Z) != len(sharedB.Z) {
		t.Fatalf("shared secret length mismatch: %d vs %d", len(sharedA.Z), len(sharedB.Z))
	}
	for i := range sharedA.Z {
		if sharedA.Z[i] != sharedB.Z[i] {
			t.Fatalf("shared secret mismatch at byte %d", i)
		}
	}
}

// TestECKACofactorMultiplication checks that ECKA with an explicit
// cofactor of 1 matches plain ECDH (a cofactor-1 curve is the only named
// curve in this table where comparing both call sites is meaningful
// without re-deriving a cofactor>1 curve's subgroup by hand).
func TestECKACofactorMultiplication(t *testing.T) {
	c, err := params.Secp256r1()
	if err != nil {
		t.Fatalf("Secp256r1: %v", err)
	}
	g := generatorPoint(t, c)
	skA := biguint.FromBig(256, big.NewInt(42))
	QB := c.ScalarMul(biguint.FromBig(256, big.NewInt(99)), g)

	viaECDH, err := ECDH(c, skA, QB)
	if err != nil {
		t.Fatalf("ECDH: %v", err)
	}
	viaECKA, err := ECKA(c, skA, QB, c.Cofactor())
	if err != nil {
		t.Fatalf("ECKA: %v", err)
	}
	if !viaECDH.Point.Equal(viaECKA.Point) {
		t.Error("ECKA with cofactor 1 disagrees with ECDH")
	}
}
