// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group

import (
	"errors"
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// A small Schnorr-style prime-order subgroup: p = 2*q+1 with q = 11,
// p = 23, generator g = 2 has order 11 in Z/23Z (2^11 mod 23 == 1).
func TestModPGroupConstructionAndScalarMul(t *testing.T) {
	p := biguint.FromBig(16, big.NewInt(23))
	g := biguint.FromBig(16, big.NewInt(2))
	order := biguint.FromBig(16, big.NewInt(11))

	mp, err := NewModPGroup(p, g, order)
	if err != nil {
		t.Fatalf("NewModPGroup: %v", err)
	}

	gen := mp.Generator()
	atOrder := mp.Mul(order, gen)
	if !mp.Equal(atOrder, mp.Identity()) {
		t.Error("[order]g != identity")
	}
}

func TestModPGroupRejectsWrongOrder(t *testing.T) {
	p := biguint.FromBig(16, big.NewInt(23))
	g := biguint.FromBig(16, big.NewInt(2))
	wrongOrder := biguint.FromBig(16, big.NewInt(5))

	_, err := NewModPGroup(p, g, wrongOrder)
	if err == nil {
		t.Fatal("expected ParameterInvalid for wrong order")
	}
	if !errors.Is(err, mrtderr.ParameterInvalid) {
		t.Errorf("expected ParameterInvalid, got %v", err)
	}
}
