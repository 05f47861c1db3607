// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package params holds compile-time-constant named parameter tables for
// every group encountered in the wild by an eMRTD reader: the RFC 5114
// MODP groups, the RFC 5114 / NIST elliptic curves, the RFC 5639
// Brainpool curves, and secp256k1. Every table entry is validated by this
// package's tests against the construction checks in curve.New /
// group.NewModPGroup.
package params

import (
	"math/big"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
)

// hexUint decodes a hex literal (no leading "0x", underscores allowed as
// visual separators) into a Uint of the stated bit width. Panics on a
// malformed literal: every call site here is a package-level constant
// table, so a bad literal is a build-time programmer error, not a
// runtime condition.
func hexUint(bits int, s string) *biguint.Uint {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' || s[i] == ' ' {
			continue
		}
		clean = append(clean, s[i])
	}
	v, ok := new(big.Int).SetString(string(clean), 16)
	if !ok {
		panic("params: malformed hex literal: " + s)
	}
	return biguint.FromBig(bits, v)
}

// curveParams is the raw literal form each named-curve function below
// builds before calling curve.New, kept unexported so callers always go
// through the validated constructor.
func curveParams(bits int, p, a, b, gx, gy, order, cofactor string) curve.Params {
	return curve.Params{
		P:        hexUint(bits, p),
		A:        hexUint(bits, a),
		B:        hexUint(bits, b),
		Gx:       hexUint(bits, gx),
		Gy:       hexUint(bits, gy),
		Order:    hexUint(bits, order),
		Cofactor: hexUint(bits, cofactor),
	}
}
