// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package curve implements short-Weierstrass elliptic curves over F_p
// and their affine point arithmetic. A Curve also satisfies the generic
// group.Group interface so the ecdh and ecdsa packages can drive it
// identically to a group.ModPGroup.
package curve

import (
	"math/big"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// Curve is the immutable descriptor of a short-Weierstrass curve
// y^2 = x^3 + ax + b over F_p, with a distinguished generator of a
// subgroup of the stated order and cofactor.
//
// Construction checks, all enforced once in New:
//   - a, b, and the generator's coordinates are elements of BaseField;
//   - the curve is non-singular: 4a^3 + 27b^2 != 0;
//   - the generator satisfies the curve equation;
//   - [Order]*Generator == Infinity;
//   - the curve is non-anomalous: Modulus != Order.
type Curve struct {
	BaseField   *modring.Ring
	ScalarField *modring.Ring
	a, b        *modring.Elem
	generator   Point
	order       *biguint.Uint
	cofactor    *biguint.Uint
}

// Params is the plain-data description of a curve's domain parameters,
// the shape every entry in the params package's named-curve tables takes
// before being instantiated into a Curve.
type Params struct {
	P        *biguint.Uint // base field modulus
	A, B     *biguint.Uint // curve coefficients
	Gx, Gy   *biguint.Uint // generator coordinates
	Order    *biguint.Uint // subgroup order (also the scalar field modulus)
	Cofactor *biguint.Uint
}

// New validates p and builds a Curve from it, running the construction
// checks listed above. A failure here is ParameterInvalid: a statically
// configured named-curve table that does not validate is a programmer
// error, to be caught at program startup.
func New(p Params) (*Curve, error) {
	baseField, err := modring.New(p.P)
	if err != nil {
		return nil, err
	}
	pBig := p.P.BigInt()
	for _, v := range []*biguint.Uint{p.A, p.B, p.Gx, p.Gy} {
		if v.BigInt().Cmp(pBig) >= 0 {
			return nil, mrtderr.New(mrtderr.ParameterInvalid, "curve: a, b, or a generator coordinate is not < p")
		}
	}
	scalarField, err := modring.New(p.Order)
	if err != nil {
		return nil, err
	}

	a := modring.From(baseField, p.A)
	b := modring.From(baseField, p.B)

	// Non-singularity: 4a^3 + 27b^2 != 0.
	four := modring.FromU64(baseField, 4)
	twentySeven := modring.FromU64(baseField, 27)
	lhs := four.Mul(a.Square().Mul(a)).Add(twentySeven.Mul(b.Square()))
	if lhs.IsZero() {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "curve: singular (4a^3+27b^2 == 0)")
	}

	if p.P.Cmp(p.Order) == 0 {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "curve: anomalous (modulus == order)")
	}

	c := &Curve{
		BaseField:   baseField,
		ScalarField: scalarField,
		a:           a,
		b:           b,
		order:       p.Order,
		cofactor:    p.Cofactor,
	}

	gx := modring.From(baseField, p.Gx)
	gy := modring.From(baseField, p.Gy)
	gen, err := c.newAffineUnchecked(gx, gy)
	if err != nil {
		return nil, err
	}
	if !c.onCurve(gen) {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "curve: generator is not on the curve")
	}
	c.generator = gen

	// [Order]*Generator must equal Infinity.
	atOrder := c.ScalarMul(p.Order, gen)
	if !atOrder.IsInfinity() {
		return nil, mrtderr.New(mrtderr.ParameterInvalid, "curve: [order]*G != infinity")
	}

	return c, nil
}

// A returns the curve coefficient a.
func (c *Curve) A() *modring.Elem { return c.a }

// B returns the curve coefficient b.
func (c *Curve) B() *modring.Elem { return c.b }

// Order returns the subgroup order.
func (c *Curve) Order() *biguint.Uint { return c.order }

// Cofactor returns the curve's cofactor.
func (c *Curve) Cofactor() *biguint.Uint { return c.cofactor }

// onCurve reports whether p satisfies y^2 = x^3 + ax + b. Infinity is
// considered on-curve trivially.
func (c *Curve) onCurve(p Point) bool {
	if p.infinity {
		return true
	}
	lhs := p.y.Square()
	rhs := p.x.Square().Mul(p.x).Add(c.a.Mul(p.x)).Add(c.b)
	return lhs.Equal(rhs)
}

// inSubgroup reports whether p is a member of the prime-order subgroup
// generated by the curve's generator. For cofactor 1 this is implied by
// onCurve; otherwise it is checked by confirming [order]*p == Infinity.
func (c *Curve) inSubgroup(p Point) bool {
	if c.cofactor.BigInt().Cmp(big.NewInt(1)) == 0 {
		return true
	}
	return c.ScalarMul(c.order, p).IsInfinity()
}
