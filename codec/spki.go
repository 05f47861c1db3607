// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	goasn1 "encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/go-mrtd/crypto9303/mrtderr"
)

// SPKIKind tags which of the three SubjectPublicKeyInfo variants a
// decoded value is: RSA, EC, or an unrecognized algorithm kept raw.
// Grounded on original_source/src/asn1/public_key_info/mod.rs, which
// keeps a raw fallback variant instead of erroring on an unrecognized
// key type (useful to a reader that must not hard-fail while walking a
// SOD's certificate chain for a data group it does not need to verify).
type SPKIKind int

const (
	SPKIRSA SPKIKind = iota
	SPKIEC
	SPKIOther
)

// SubjectPublicKeyInfo is the decoded
// SEQUENCE { algorithm AlgorithmIdentifier, subjectPublicKey BIT STRING }
// structure, dispatched on the inner algorithm OID.
//
//   - SPKIRSA: RSAModulus/RSAExponent hold the decoded RSA public key
//     integers (the RSA SPKI's subjectPublicKey is itself a DER
//     RSAPublicKey SEQUENCE { INTEGER, INTEGER }).
//   - SPKIEC: ECPoint holds the raw SEC1 point octets exactly as carried
//     in the BIT STRING; the curve (named by the algorithm parameters,
//     or absent for implicit/explicit curve parameters this layer does
//     not itself resolve) is left to the caller to instantiate via
//     params and decode the octets with codec/bsi3.
//   - SPKIOther: AlgorithmOID and RawKey preserve enough of the
//     original encoding for a caller to skip this key without erroring.
type SubjectPublicKeyInfo struct {
	Kind SPKIKind

	AlgorithmOID goasn1.ObjectIdentifier

	// RSA fields (Kind == SPKIRSA).
	RSAModulus  []byte
	RSAExponent []byte

	// EC fields (Kind == SPKIEC).
	ECCurveOID goasn1.ObjectIdentifier // absent (nil) for explicit params
	ECPoint    []byte

	// Other fields (Kind == SPKIOther).
	RawKey []byte
}

// ParseSubjectPublicKeyInfo decodes der as a SubjectPublicKeyInfo
// SEQUENCE and dispatches on the algorithm OID: rsaEncryption (decodes
// the nested RSAPublicKey), id-ecPublicKey (keeps the raw point octets),
// anything else (SPKIOther, raw).
func ParseSubjectPublicKeyInfo(der []byte) (SubjectPublicKeyInfo, error) {
	in := cryptobyte.String(der)
	var seq cryptobyte.String
	if !in.ReadASN1(&seq, asn1.SEQUENCE) || !in.Empty() {
		return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid SubjectPublicKeyInfo SEQUENCE")
	}

	var algSeq cryptobyte.String
	if !seq.ReadASN1(&algSeq, asn1.SEQUENCE) {
		return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing AlgorithmIdentifier")
	}
	var oid goasn1.ObjectIdentifier
	if !algSeq.ReadASN1ObjectIdentifier(&oid) {
		return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing algorithm OID")
	}
	algParams := algSeq // whatever is left: NULL, curve OID, ECParameters, ...

	var bitString asn1.BitString
	if !seq.ReadASN1BitString(&bitString) {
		return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing subjectPublicKey BIT STRING")
	}
	if !seq.Empty() {
		return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: trailing SubjectPublicKeyInfo data")
	}
	key := bitString.Bytes

	switch {
	case oid.Equal(OIDRSAEncryption):
		inner := cryptobyte.String(key)
		var innerSeq cryptobyte.String
		if !inner.ReadASN1(&innerSeq, asn1.SEQUENCE) || !inner.Empty() {
			return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid RSAPublicKey SEQUENCE")
		}
		var n, e cryptobyte.String
		if !innerSeq.ReadASN1(&n, asn1.INTEGER) || !innerSeq.ReadASN1(&e, asn1.INTEGER) || !innerSeq.Empty() {
			return SubjectPublicKeyInfo{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid RSAPublicKey fields")
		}
		return SubjectPublicKeyInfo{
			Kind:         SPKIRSA,
			AlgorithmOID: oid,
			RSAModulus:   trimASN1IntegerPadding(n),
			RSAExponent:  trimASN1IntegerPadding(e),
		}, nil
	case oid.Equal(OIDECPublicKey):
		var curveOID goasn1.ObjectIdentifier
		if !algParams.Empty() {
			if !algParams.ReadASN1ObjectIdentifier(&curveOID) {
				curveOID = nil // explicit ECParameters, not a named curve: leave nil
			}
		}
		return SubjectPublicKeyInfo{
			Kind:         SPKIEC,
			AlgorithmOID: oid,
			ECCurveOID:   curveOID,
			ECPoint:      key,
		}, nil
	default:
		return SubjectPublicKeyInfo{
			Kind:         SPKIOther,
			AlgorithmOID: oid,
			RawKey:       key,
		}, nil
	}
}

// trimASN1IntegerPadding strips a single leading 0x00 sign-guard byte
// from a DER INTEGER's big-endian encoding, so callers get the plain
// unsigned magnitude.
func trimASN1IntegerPadding(b []byte) []byte {
	if len(b) > 1 && b[0] == 0x00 && b[1]&0x80 != 0 {
		return b[1:]
	}
	return b
}
