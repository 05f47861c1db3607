// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import (
	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/group"
)

// Verify at compile time that *Curve implements the shared group
// interface, so ecdh and ecdsa can be written once against group.Group.
var _ group.Group = (*Curve)(nil)

// Identity returns the point at infinity as a group.Element.
func (c *Curve) Identity() group.Element {
	return c.Infinity()
}

// Generator returns the curve's generator as a group.Element.
func (c *Curve) Generator() group.Element {
	return c.generator
}

// Add returns a + b.
func (c *Curve) Add(a, b group.Element) group.Element {
	return a.(Point).Add(b.(Point))
}

// Mul returns [scalar]point.
func (c *Curve) Mul(scalar *biguint.Uint, point group.Element) group.Element {
	return c.ScalarMul(scalar, point.(Point))
}

// RandomScalar draws a uniform scalar in [0, order] from rng.
func (c *Curve) RandomScalar(rng biguint.RNG) (*biguint.Uint, error) {
	return biguint.Random(rng, c.order)
}

// Equal reports whether a and b are the same point.
func (c *Curve) Equal(a, b group.Element) bool {
	return a.(Point).Equal(b.(Point))
}
