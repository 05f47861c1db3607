// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/curve"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/params"
)

// TestVerifyAcceptsReferenceSignerAndRejectsTampering checks that
// verification accepts a signature produced by a reference signer on
// the same curve, and rejects any single-bit flip in the signature or
// the message hash. The reference signer here is the standard library's
// crypto/ecdsa over crypto/elliptic.P256, which is the same curve
// (secp256r1) this package's params.Secp256r1 table describes, used only
// to generate the test vector and never wired into the verifier itself.
func TestVerifyAcceptsReferenceSignerAndRejectsTampering(t *testing.T) {
	c, err := params.Secp256r1()
	if err != nil {
		t.Fatalf("Secp256r1: %v", err)
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	message := []byte("eMRTD passive authentication test message")
	digest := sha256.Sum256(message)

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	q := publicKeyPoint(t, c, priv.X, priv.Y)
	e := HashToScalar(c, digest[:])
	sig := Signature{
		R: modring.From(c.ScalarField, biguint.FromBig(c.ScalarField.Bits(), r)),
		S: modring.From(c.ScalarField, biguint.FromBig(c.ScalarField.Bits(), s)),
	}

	if err := Verify(c, q, e, sig); err != nil {
		t.Fatalf("Verify rejected a valid signature: %v", err)
	}

	// Flip a bit in s.
	sFlipped := new(big.Int).Xor(s, big.NewInt(1))
	badSig := Signature{
		R: sig.R,
		S: modring.From(c.ScalarField, biguint.FromBig(c.ScalarField.Bits(), sFlipped)),
	}
	if err := Verify(c, q, e, badSig); err == nil {
		t.Error("Verify accepted a signature with a flipped bit in s")
	}

	// Flip a bit in the message hash.
	badDigest := digest
	badDigest[0] ^= 0x01
	badE := HashToScalar(c, badDigest[:])
	if err := Verify(c, q, badE, sig); err == nil {
		t.Error("Verify accepted a signature against a flipped message hash")
	}
}

func publicKeyPoint(t *testing.T, c *curve.Curve, x, y *big.Int) curve.Point {
	t.Helper()
	bits := c.BaseField.Bits()
	gx := modring.From(c.BaseField, biguint.FromBig(bits, x))
	gy := modring.From(c.BaseField, biguint.FromBig(bits, y))
	p, err := c.FromAffine(gx, gy)
	if err != nil {
		t.Fatalf("FromAffine: %v", err)
	}
	return p
}
