// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modring

import (
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
)

// testRing builds a small Ring over a 256-bit prime for unit tests.
func testRing(t *testing.T) *Ring {
	t.Helper()
	// secp256k1 field prime.
	p, ok := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	if !ok {
		t.Fatal("bad prime literal")
	}
	ring, err := New(biguint.FromBig(256, p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ring
}

func TestRoundTrip(t *testing.T) {
	ring := testRing(t)
	for _, v := range []int64{0, 1, 2, 12345, 999999937} {
		x := biguint.FromBig(256, big.NewInt(v))
		e := From(ring, x)
		got := e.ToUint().BigInt()
		if got.Cmp(big.NewInt(v)) != 0 {
			t.Errorf("round trip %d: got %s", v, got)
		}
	}
}

func TestFieldAxioms(t *testing.T) {
	ring := testRing(t)
	a := FromU64(ring, 12345)
	zero := FromU64(ring, 0)
	one := FromU64(ring, 1)

	if !a.Sub(a).Equal(zero) {
		t.Error("a - a != 0")
	}
	if !a.Add(zero).Equal(a) {
		t.Error("a + 0 != a")
	}
	if !a.Mul(one).Equal(a) {
		t.Error("a * 1 != a")
	}
	inv, ok := a.Inv()
	if !ok {
		t.Fatal("a has no inverse")
	}
	if !inv.Mul(a).Equal(one) {
		t.Error("a^-1 * a != 1")
	}
}

func TestSqrt(t *testing.T) {
	ring := testRing(t)
	x := FromU64(ring, 4)
	root, err := x.Sqrt()
	if err != nil {
		t.Fatalf("Sqrt: %v", err)
	}
	if !root.Square().Equal(x) {
		t.Error("sqrt(4)^2 != 4")
	}
}

func TestPowCTMatchesPow(t *testing.T) {
	ring := testRing(t)
	a := FromU64(ring, 7)
	want := a.Pow(65)
	got := a.PowCT(biguint.FromBig(256, big.NewInt(65)))
	if !got.Equal(want) {
		t.Error("PowCT(65) != Pow(65)")
	}
}
