// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package group generalizes Mod-P Diffie-Hellman groups and elliptic
// curves behind one additive interface: { Point; Scalar; generator();
// mul(scalar, point); random_scalar(rng) }, implemented twice. MulGroup
// is the multiplicative-to-additive adapter; ModPGroup (in modp.go) is
// its first concrete instance. The elliptic curve instance lives in the
// sibling curve package, which imports this package to satisfy the same
// Group interface.
package group

import "github.com/go-mrtd/crypto9303/biguint"

// MultiplicativeElement is the minimal interface a multiplicative group
// element (such as *modring.Elem) must satisfy to be wrapped by MulGroup:
// multiplication, inversion, constant-time exponentiation, and equality,
// each expressed in terms of the element type itself.
type MultiplicativeElement[T any] interface {
	Mul(T) T
	Inv() (T, bool)
	PowCT(*biguint.Uint) T
	Equal(T) bool
}

// MulGroup re-presents a multiplicative group element with additive
// operators, so generic Diffie-Hellman-shaped code can treat a Mod-P
// group and an elliptic curve identically: add<->mul, neg<->inv,
// scalar-mul<->pow.
type MulGroup[T MultiplicativeElement[T]] struct {
	Value T
}

// Add is the additive view of multiplication.
func (g MulGroup[T]) Add(h MulGroup[T]) MulGroup[T] {
	return MulGroup[T]{Value: g.Value.Mul(h.Value)}
}

// Neg is the additive view of inversion. ok is false only when Value is
// the group's absorbing element (never expected for a valid Mod-P group
// element, since those are drawn from 1..p-1).
func (g MulGroup[T]) Neg() (MulGroup[T], bool) {
	inv, ok := g.Value.Inv()
	if !ok {
		return MulGroup[T]{}, false
	}
	return MulGroup[T]{Value: inv}, true
}

// ScalarMul is the additive view of exponentiation: [k]g, computed with
// the wrapped element's constant-time PowCT so the scalar multiplication
// inherits the same constant-time discipline whether the caller is
// working over a Mod-P group or an elliptic curve.
func (g MulGroup[T]) ScalarMul(k *biguint.Uint) MulGroup[T] {
	return MulGroup[T]{Value: g.Value.PowCT(k)}
}

// Equal reports whether g and h wrap the same element.
func (g MulGroup[T]) Equal(h MulGroup[T]) bool {
	return g.Value.Equal(h.Value)
}
