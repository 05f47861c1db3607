// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsapss

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/codec"
)

// This is a 2048-bit RSA public key, SHA-256/MGF1-SHA256 signature with
// a 32-byte salt, over the six-byte message "123400", taken verbatim
// from original_source's own RSASSA-PSS unit test.
const (
	pssVectorSubjectPublicKeyHex = "30820122300d06092a864886f70d01010105000382010f003082010a0282010100a2b451a07d0aa5f96e455671513550514a8a5b462ebef717094fa1fee82224e637f9746d3f7cafd31878d80325b6ef5a1700f65903b469429e89d6eac8845097b5ab393189db92512ed8a7711a1253facd20f79c15e8247f3d3e42e46e48c98e254a2fe9765313a03eff8f17e1a029397a1fa26a8dce26f490ed81299615d9814c22da610428e09c7d9658594266f5c021d0fceca08d945a12be82de4d1ece6b4c03145b5d3495d4ed5411eb878daf05fd7afc3e09ada0f1126422f590975a1969816f48698bcbba1b4d9cae79d460d8f9f85e7975005d9bc22c4e5ac0f7c1a45d12569a62807d3b9a02e5a530e773066f453d1f5b4c2e9cf7820283f742b9d50203010001"
	pssVectorSignatureHex        = "68caf07e71ee654ffabf07d342fc4059deb4f7e5970746c423b1e8f668d5332275cc35eb61270aebd27855b1e80d59def47fe8882867fd33c2308c91976baa0b1df952caa78db4828ab81e79949bf145cbdfd1c4987ed036f81e8442081016f20fa4b587574884ca6f6045959ce3501ae7c02b1902ec1d241ef28dee356c0d30d28a950f1fbc683ee7d9aad26b048c13426fe3975d5638afeb5b9c1a99d162d3a5810e8b074d7a2eae2be52b577151f76e1f734b0a956ef4f22be64dc20a81ad1316e4f79dff5fc41fc08a20bc612283a88415d41595bfea66d59de7ac12e230f72244ad9905aef0ead3fa41ed70bf4218863d5f041292f2d14ce0a7271c6d36"
	pssVectorMessageHex          = "313233343030"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

func pssVectorPublicKey(t *testing.T) PublicKey {
	t.Helper()
	spkiDER := mustHex(t, pssVectorSubjectPublicKeyHex)
	spki, err := codec.ParseSubjectPublicKeyInfo(spkiDER)
	if err != nil {
		t.Fatalf("ParseSubjectPublicKeyInfo: %v", err)
	}
	if spki.Kind != codec.SPKIRSA {
		t.Fatalf("expected SPKIRSA, got %v", spki.Kind)
	}
	n := biguint.FromBytes(len(spki.RSAModulus)*8, spki.RSAModulus)
	e := biguint.FromBytes(len(spki.RSAExponent)*8, spki.RSAExponent)
	pub, err := NewPublicKey(n, e)
	if err != nil {
		t.Fatalf("NewPublicKey: %v", err)
	}
	return pub
}

func pssVectorParams() codec.RsaPssParameters {
	sha256Digest := codec.DigestAlgorithmIdentifier{OID: codec.OIDSHA256}
	return codec.RsaPssParameters{
		HashAlgorithm: sha256Digest,
		MaskGenAlgorithm: codec.MaskGenAlgorithm{
			Mgf1:   sha256Digest,
			IsMgf1: true,
		},
		SaltLength:   32,
		TrailerField: 1,
	}
}

// TestVerifyAcceptsPSSVector is the positive case.
func TestVerifyAcceptsPSSVector(t *testing.T) {
	pub := pssVectorPublicKey(t)
	message := mustHex(t, pssVectorMessageHex)
	signature := mustHex(t, pssVectorSignatureHex)

	if err := Verify(pub, message, signature, pssVectorParams()); err != nil {
		t.Fatalf("Verify rejected a genuine signature: %v", err)
	}
}

// TestVerifyRejectsFlippedSignatureByte checks that flipping any byte of
// the signature causes SignatureInvalid.
func TestVerifyRejectsFlippedSignatureByte(t *testing.T) {
	pub := pssVectorPublicKey(t)
	message := mustHex(t, pssVectorMessageHex)

	for _, idx := range []int{0, 1, 64, 128, 255} {
		signature := mustHex(t, pssVectorSignatureHex)
		signature[idx] ^= 0x01
		if err := Verify(pub, message, signature, pssVectorParams()); err == nil {
			t.Errorf("Verify accepted a signature with byte %d flipped", idx)
		}
	}
}

// TestVerifyRejectsFlippedMessage checks a tampered message is rejected.
func TestVerifyRejectsFlippedMessage(t *testing.T) {
	pub := pssVectorPublicKey(t)
	message := mustHex(t, pssVectorMessageHex)
	message[0] ^= 0x01
	signature := mustHex(t, pssVectorSignatureHex)

	if err := Verify(pub, message, signature, pssVectorParams()); err == nil {
		t.Error("Verify accepted a signature over a tampered message")
	}
}

// TestMGF1KnownLength exercises MGF1 in isolation: the output is always
// exactly the requested length regardless of the underlying hash's
// block size.
func TestMGF1KnownLength(t *testing.T) {
	out := MGF1(crypto.SHA256, []byte("seed"), 100)
	if len(out) != 100 {
		t.Fatalf("MGF1 output length = %d, want 100", len(out))
	}
}
