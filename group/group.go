// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group

import "github.com/go-mrtd/crypto9303/biguint"

// Group is the shared additive-group interface implemented by both
// ModPGroup (this package) and curve.Curve (the sibling package), per the
// "implement the trait twice" design note: generic ECDH/ECKA code is
// written once against Group and works unmodified over either a Mod-P
// Diffie-Hellman group or an elliptic curve.
//
// Points and scalars are not Go-generic type parameters on Group itself:
// points travel as the opaque Element and scalars as *biguint.Uint, so a
// field of type Group need not name concrete types at every call site.
// Implementations pass their own concrete point type through Element, as
// ModPGroup does here with MulGroup values.
type Group interface {
	// Identity returns the group's identity element (the additive zero).
	Identity() Element

	// Generator returns the distinguished generator of the group.
	Generator() Element

	// Add returns a + b.
	Add(a, b Element) Element

	// Mul returns [scalar]point.
	Mul(scalar *biguint.Uint, point Element) Element

	// RandomScalar draws a uniform scalar from rng, suitable for use as
	// an ephemeral private key or nonce in this group.
	RandomScalar(rng biguint.RNG) (*biguint.Uint, error)

	// Equal reports whether a and b are the same element.
	Equal(a, b Element) bool
}

// Element is the opaque group-element type threaded through Group. Both
// ModPGroup's MulGroup[*modring.Elem] values and curve.Point satisfy it trivially (any concrete type does,
// since the interface is empty); callers type-assert back to the
// concrete representation they know they are working with. This mirrors
// how secp256k1's own reference implementations intermix *big.Int-based
// curve parameters with an optimized Jacobian point type behind a single
// crypto/elliptic.Curve interface.
type Element interface{}
