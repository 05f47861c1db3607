// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import (
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
)

func fromHex(s string) *biguint.Uint {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bad hex literal: " + s)
	}
	return biguint.FromBig(256, x)
}

// secp256k1Params builds secp256k1's domain parameters: a convenient,
// well-known, cofactor-1 curve to drive this package's invariant tests.
func secp256k1Params() Params {
	return Params{
		P:        fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
		A:        fromHex("0000000000000000000000000000000000000000000000000000000000000000"),
		B:        fromHex("0000000000000000000000000000000000000000000000000000000000000007"),
		Gx:       fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Gy:       fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		Order:    fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
		Cofactor: biguint.FromBig(256, big.NewInt(1)),
	}
}

func TestCurveConstructionInvariants(t *testing.T) {
	c, err := New(secp256k1Params())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := c.generator
	if !c.onCurve(g) {
		t.Error("generator not reported on-curve")
	}
	atOrder := c.ScalarMul(c.order, g)
	if !atOrder.IsInfinity() {
		t.Error("[order]G != infinity")
	}
}

func TestScalarMulHomomorphism(t *testing.T) {
	c, err := New(secp256k1Params())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := c.generator
	k1 := biguint.FromBig(256, big.NewInt(12345))
	k2 := biguint.FromBig(256, big.NewInt(67890))
	k12 := biguint.FromBig(256, big.NewInt(12345+67890))

	lhs := c.ScalarMul(k12, g)
	rhs := c.ScalarMul(k1, g).Add(c.ScalarMul(k2, g))
	if !lhs.Equal(rhs) {
		t.Error("[k1+k2]G != [k1]G + [k2]G")
	}
}

func TestScalarMulNegation(t *testing.T) {
	c, err := New(secp256k1Params())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := c.generator
	k := biguint.FromBig(256, big.NewInt(424242))
	negK := new(big.Int).Sub(c.order.BigInt(), k.BigInt())

	kg := c.ScalarMul(k, g)
	negKG := c.ScalarMul(biguint.FromBig(256, negK), g)
	sum := kg.Add(negKG)
	if !sum.IsInfinity() {
		t.Error("[k]G + [-k]G != infinity")
	}
}

func TestDoublingMatchesScalarMulByTwo(t *testing.T) {
	c, err := New(secp256k1Params())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := c.generator
	doubled := g.Double()
	viaScalar := c.ScalarMul(biguint.FromBig(256, big.NewInt(2)), g)
	if !doubled.Equal(viaScalar) {
		t.Error("g.Double() != [2]G")
	}
}

func TestRejectsWrongB(t *testing.T) {
	// Bumping b by one must break [order]G == infinity (or, as happens
	// here, the generator no longer lying on the curve at all), and New
	// must reject it as ParameterInvalid either way.
	p := secp256k1Params()
	p.B = biguint.FromBig(256, new(big.Int).Add(p.B.BigInt(), big.NewInt(1)))
	if _, err := New(p); err == nil {
		t.Fatal("expected construction to fail for a perturbed b")
	}
}
