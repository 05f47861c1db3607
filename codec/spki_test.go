// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	goasn1 "encoding/asn1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rsaSPKIHex is the same 2048-bit RSA SubjectPublicKeyInfo used by the
// rsapss package's RSASSA-PSS test vector, reused here to exercise the
// RSA branch of the three-way dispatch.
const rsaSPKIHex = "30820122300d06092a864886f70d01010105000382010f003082010a0282010100a2b451a07d0aa5f96e455671513550514a8a5b462ebef717094fa1fee82224e637f9746d3f7cafd31878d80325b6ef5a1700f65903b469429e89d6eac8845097b5ab393189db92512ed8a7711a1253facd20f79c15e8247f3d3e42e46e48c98e254a2fe9765313a03eff8f17e1a029397a1fa26a8dce26f490ed81299615d9814c22da610428e09c7d9658594266f5c021d0fceca08d945a12be82de4d1ece6b4c03145b5d3495d4ed5411eb878daf05fd7afc3e09ada0f1126422f590975a1969816f48698bcbba1b4d9cae79d460d8f9f85e7975005d9bc22c4e5ac0f7c1a45d12569a62807d3b9a02e5a530e773066f453d1f5b4c2e9cf7820283f742b9d50203010001"

func TestParseSubjectPublicKeyInfoRSA(t *testing.T) {
	der, err := hex.DecodeString(rsaSPKIHex)
	require.NoError(t, err)

	spki, err := ParseSubjectPublicKeyInfo(der)
	require.NoError(t, err)
	assert.Equal(t, SPKIRSA, spki.Kind)
	assert.True(t, spki.AlgorithmOID.Equal(OIDRSAEncryption))
	assert.Equal(t, []byte{0x01, 0x00, 0x01}, spki.RSAExponent)
	assert.Len(t, spki.RSAModulus, 256)
}

// buildECSPKI assembles a minimal id-ecPublicKey SubjectPublicKeyInfo by
// hand, bypassing the codec under test, so the EC dispatch branch can be
// exercised without depending on a second external fixture.
func buildECSPKI(t *testing.T, curveOID goasn1.ObjectIdentifier, point []byte) []byte {
	t.Helper()
	algOID, err := goasn1.Marshal(OIDECPublicKey)
	require.NoError(t, err)
	curveOIDDER, err := goasn1.Marshal(curveOID)
	require.NoError(t, err)

	var algSeqBody []byte
	algSeqBody = append(algSeqBody, algOID...)
	algSeqBody = append(algSeqBody, curveOIDDER...)
	algSeq := wrapSequence(algSeqBody)

	bitString := goasn1.BitString{Bytes: point, BitLength: len(point) * 8}
	// No unused-bits octet is prepended by hand: goasn1.Marshal already
	// wraps BIT STRING content with it, so marshal bitString directly.
	bitStringDER, err := goasn1.Marshal(bitString)
	require.NoError(t, err)

	var body []byte
	body = append(body, algSeq...)
	body = append(body, bitStringDER...)
	return wrapSequence(body)
}

// wrapSequence wraps body in a DER SEQUENCE tag/length, using BER short
// or long form as needed; test fixtures here never exceed 127 bytes of
// body so only the short form is exercised.
func wrapSequence(body []byte) []byte {
	out := []byte{0x30}
	if len(body) < 128 {
		out = append(out, byte(len(body)))
	} else {
		out = append(out, 0x81, byte(len(body)))
	}
	return append(out, body...)
}

// oidSecp256r1 (prime256v1, 1.2.840.10045.3.1.7) stands in for a named
// EC curve identifier here; the codec package itself does not hold a
// curve OID table (that lives in params), so the test supplies a
// plausible literal rather than importing params into codec's tests.
var oidSecp256r1 = goasn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}

func TestParseSubjectPublicKeyInfoEC(t *testing.T) {
	point := append([]byte{0x04}, make([]byte, 64)...) // uncompressed tag + zeroed coordinates
	der := buildECSPKI(t, oidSecp256r1, point)

	spki, err := ParseSubjectPublicKeyInfo(der)
	require.NoError(t, err)
	assert.Equal(t, SPKIEC, spki.Kind)
	require.NotNil(t, spki.ECCurveOID)
	assert.True(t, spki.ECCurveOID.Equal(oidSecp256r1))
	assert.Equal(t, point, spki.ECPoint)
}

func TestParseSubjectPublicKeyInfoRejectsTruncatedInput(t *testing.T) {
	der, err := hex.DecodeString(rsaSPKIHex)
	require.NoError(t, err)

	_, err = ParseSubjectPublicKeyInfo(der[:len(der)-10])
	assert.Error(t, err)
}
