// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import (
	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// Point is a curve point: either Infinity or an Affine(x, y) pair, both
// coordinates drawn from the owning curve's base field.
type Point struct {
	curve    *Curve
	infinity bool
	x, y     *modring.Elem
}

// Infinity returns the point at infinity for c.
func (c *Curve) Infinity() Point {
	return Point{curve: c, infinity: true}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.infinity
}

// X returns p's affine x-coordinate. Calling X on Infinity panics;
// callers must check IsInfinity first.
func (p Point) X() *modring.Elem {
	if p.infinity {
		panic("curve: X() called on the point at infinity")
	}
	return p.x
}

// Y returns p's affine y-coordinate.
func (p Point) Y() *modring.Elem {
	if p.infinity {
		panic("curve: Y() called on the point at infinity")
	}
	return p.y
}

// newAffineUnchecked builds an Affine point without validating curve
// membership; used internally once by New while bootstrapping the
// generator (which New itself then validates with onCurve) and by the
// arithmetic routines below, which only ever combine already-validated
// points and so preserve the invariant by construction.
func (c *Curve) newAffineUnchecked(x, y *modring.Elem) (Point, error) {
	return Point{curve: c, x: x, y: y}, nil
}

// FromAffine validates that (x, y) is on the curve and, if the curve's
// cofactor is not 1, in the prime-order subgroup, returning PointInvalid
// otherwise.
func (c *Curve) FromAffine(x, y *modring.Elem) (Point, error) {
	p := Point{curve: c, x: x, y: y}
	if !c.onCurve(p) {
		return Point{}, mrtderr.New(mrtderr.PointInvalid, "curve: point is not on the curve")
	}
	if !c.inSubgroup(p) {
		return Point{}, mrtderr.New(mrtderr.PointInvalid, "curve: point is not in the prime-order subgroup")
	}
	return p, nil
}

// FromX solves y^2 = x^3 + ax + b for y and returns the Affine point
// whose y has the stated canonical parity (0 = even, 1 = odd), used by
// the point-decompression codec. It fails with PointInvalid when the
// right-hand side is a non-residue.
func (c *Curve) FromX(x *modring.Elem, wantOddY uint64) (Point, error) {
	rhs := x.Square().Mul(x).Add(c.a.Mul(x)).Add(c.b)
	y, err := rhs.Sqrt()
	if err != nil {
		return Point{}, mrtderr.New(mrtderr.PointInvalid, "curve: x has no corresponding point on the curve: %v", err)
	}
	negY := y.Neg()
	oddMask := parityOf(y)
	sameParity := oddMask ^ wantOddY ^ 1 // 1 when y already has the requested parity
	chosen := modring.Select(y, negY, sameParity)
	p := Point{curve: c, x: x, y: chosen}
	if !c.inSubgroup(p) {
		return Point{}, mrtderr.New(mrtderr.PointInvalid, "curve: decompressed point is not in the prime-order subgroup")
	}
	return p, nil
}

// parityOf returns 1 if y's integer value is odd, 0 otherwise.
func parityOf(y *modring.Elem) uint64 {
	b := y.ToUint().Bytes()
	return uint64(b[len(b)-1] & 1)
}

// sameCurve panics if a and b belong to different curves.
func sameCurve(a, b *Curve) {
	if a != b {
		panic("curve: points belong to different curves")
	}
}

// Add implements the four cases of short-Weierstrass affine addition.
func (p Point) Add(q Point) Point {
	sameCurve(p.curve, q.curve)
	c := p.curve

	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	if p.x.Equal(q.x) {
		if p.y.Equal(q.y.Neg()) {
			return c.Infinity()
		}
		return p.doubleAffine()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := q.y.Sub(p.y)
	den := q.x.Sub(p.x)
	lambda, ok := num.Div(den)
	if !ok {
		// den == 0 implies x1 == x2, already handled above; unreachable
		// for valid on-curve inputs.
		return c.Infinity()
	}
	x3 := lambda.Square().Sub(p.x).Sub(q.x)
	y3 := lambda.Mul(p.x.Sub(x3)).Sub(p.y)
	pt, _ := c.newAffineUnchecked(x3, y3)
	return pt
}

// Double returns p + p, handling Infinity explicitly before delegating to
// the Affine doubling formula.
func (p Point) Double() Point {
	if p.infinity {
		return p
	}
	return p.doubleAffine()
}

// doubleAffine computes p + p for an Affine p. Assumes p is Affine
// (checked by its callers, Add and Double).
func (p Point) doubleAffine() Point {
	c := p.curve
	if p.y.IsZero() {
		return c.Infinity()
	}
	// lambda = (3x^2 + a) / (2y)
	three := modring.FromU64(c.BaseField, 3)
	two := modring.FromU64(c.BaseField, 2)
	num := three.Mul(p.x.Square()).Add(c.a)
	den := two.Mul(p.y)
	lambda, _ := num.Div(den)
	x3 := lambda.Square().Sub(p.x).Sub(p.x)
	y3 := lambda.Mul(p.x.Sub(x3)).Sub(p.y)
	pt, _ := c.newAffineUnchecked(x3, y3)
	return pt
}

// Neg returns -p = (x, -y).
func (p Point) Neg() Point {
	if p.infinity {
		return p
	}
	pt, _ := p.curve.newAffineUnchecked(p.x, p.y.Neg())
	return pt
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	sameCurve(p.curve, q.curve)
	if p.infinity || q.infinity {
		// Conditional-select between Infinity and an Affine
		// representative is documented as non-sensitive: a scalar
		// multiplication only returns Infinity for pathological
		// (secret-independent-of-value) input, so this branch does
		// not leak anything about a secret scalar's value.
		return p.infinity == q.infinity
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// ScalarMul computes [k]p using a left-to-right double-and-conditional-add
// loop of length k.Bits(): exactly that many doublings and conditional
// selects run regardless of k's value, so the loop leaks only the
// declared bit width of the scalar's type. Point addition itself is not
// constant-time across its doubling/general/identity branches; see the
// package doc and the design notes this implements.
func (c *Curve) ScalarMul(k *biguint.Uint, p Point) Point {
	result := c.Infinity()
	kBytes := k.Bytes()
	bitLen := k.Bits()
	for i := bitLen - 1; i >= 0; i-- {
		result = result.Double()
		byteIdx := len(kBytes) - 1 - i/8
		bit := uint64((kBytes[byteIdx] >> uint(i%8)) & 1)
		added := result.Add(p)
		result = selectPoint(added, result, bit)
	}
	return result
}

// ScalarMul is the Point-method convenience form of Curve.ScalarMul.
func (p Point) ScalarMul(k *biguint.Uint) Point {
	return p.curve.ScalarMul(k, p)
}

// selectPoint is the constant-time selector ScalarMul's conditional-add
// step uses. Selecting between Infinity and an Affine point is not
// constant time (see Equal's doc comment); every other combination is.
func selectPoint(x, y Point, choice uint64) Point {
	sameCurve(x.curve, y.curve)
	if x.infinity || y.infinity {
		if choice == 1 {
			return x
		}
		return y
	}
	return Point{
		curve: x.curve,
		x:     modring.Select(x.x, y.x, choice),
		y:     modring.Select(x.y, y.y, choice),
	}
}
