// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group

import (
	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// ModPGroup is a prime-order subgroup of F_p* (a Mod-P Diffie-Hellman
// group, e.g. an RFC 5114 MODP group), with a distinguished generator.
// Construction validates 1 < g < p and g^order == 1 mod p.
//
// The full PKCS #3 / X9.42 rule restricting exchanged scalars to
// [2, order-2] is out of scope at this layer: callers that need it trim
// the sampled scalar themselves.
type ModPGroup struct {
	field     *modring.Ring // F_p
	order     *biguint.Uint // subgroup order, used to bound random scalars
	generator *modring.Elem
}

// NewModPGroup builds a ModPGroup over the field with modulus p, using g
// as the generator of the subgroup of the stated order.
func NewModPGroup(p, g, order *biguint.Uint) (*ModPGroup, error) {
	field, err := modring.New(p)
	if err != nil {
		return nil, err
	}
	gElem := modring.From(field, g)
	one := modring.FromU64(field, 1)
	if gElem.Equal(one) || gElem.IsZero() {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "modp: generator must satisfy 1 < g < p")
	}
	if !gElem.PowCT(order).Equal(one) {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "modp: generator does not have the stated order")
	}
	return &ModPGroup{field: field, order: order, generator: gElem}, nil
}

// Field returns the underlying F_p ring.
func (mp *ModPGroup) Field() *modring.Ring {
	return mp.field
}

// Order returns the subgroup order.
func (mp *ModPGroup) Order() *biguint.Uint {
	return mp.order
}

// Identity returns the multiplicative identity 1, i.e. the additive zero
// of this group.
func (mp *ModPGroup) Identity() Element {
	return MulGroup[*modring.Elem]{Value: modring.FromU64(mp.field, 1)}
}

// Generator returns the group's distinguished generator.
func (mp *ModPGroup) Generator() Element {
	return MulGroup[*modring.Elem]{Value: mp.generator}
}

// Add returns a*b (the additive view of multiplication in F_p*).
func (mp *ModPGroup) Add(a, b Element) Element {
	return a.(MulGroup[*modring.Elem]).Add(b.(MulGroup[*modring.Elem]))
}

// Mul returns point^scalar (the additive view of exponentiation),
// computed via the wrapped element's constant-time PowCT.
func (mp *ModPGroup) Mul(scalar *biguint.Uint, point Element) Element {
	return point.(MulGroup[*modring.Elem]).ScalarMul(scalar)
}

// RandomScalar draws a uniform integer in [0, order] from rng. Note this
// samples the inclusive range [0, order], not the PKCS #3 range
// [2, order-2]; narrowing that range, if required, is the caller's job.
func (mp *ModPGroup) RandomScalar(rng biguint.RNG) (*biguint.Uint, error) {
	return biguint.Random(rng, mp.order)
}

// Equal reports whether a and b are the same field element.
func (mp *ModPGroup) Equal(a, b Element) bool {
	return a.(MulGroup[*modring.Elem]).Equal(b.(MulGroup[*modring.Elem]))
}
