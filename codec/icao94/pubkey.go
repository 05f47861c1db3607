// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package icao94

import (
	"encoding/asn1"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/codec"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// BER tags used by the ICAO 9303-11 §9.4 public-key sequences.
const (
	tagSequence = 0x30
	tagOID      = 0x06
	tagField1   = 0x81
	tagField2   = 0x82
	tagField3   = 0x83
	tagField4   = 0x84
)

// tlv is one decoded BER tag-length-value item.
type tlv struct {
	tag   byte
	value []byte
}

// readTLV reads a single TLV item from the front of b, returning it and
// the remaining bytes.
func readTLV(policy codec.Policy, b []byte) (item tlv, rest []byte, err error) {
	if len(b) < 1 {
		return tlv{}, nil, mrtderr.New(mrtderr.EncodingMalformed, "icao94: truncated TLV: missing tag")
	}
	tag := b[0]
	n, consumed, err := DecodeLength(policy, b[1:])
	if err != nil {
		return tlv{}, nil, err
	}
	start := 1 + consumed
	if len(b) < start+n {
		return tlv{}, nil, mrtderr.New(mrtderr.EncodingMalformed, "icao94: truncated TLV value")
	}
	return tlv{tag: tag, value: b[start : start+n]}, b[start+n:], nil
}

// readSequenceBody unwraps the outer SEQUENCE tag (0x30) and returns its
// body bytes.
func readSequenceBody(policy codec.Policy, der []byte) ([]byte, error) {
	item, rest, err := readTLV(policy, der)
	if err != nil {
		return nil, err
	}
	if item.tag != tagSequence {
		return nil, mrtderr.New(mrtderr.EncodingMalformed, "icao94: expected SEQUENCE tag 0x30, got 0x%02x", item.tag)
	}
	if len(rest) != 0 {
		return nil, mrtderr.New(mrtderr.EncodingMalformed, "icao94: trailing bytes after outer SEQUENCE")
	}
	return item.value, nil
}

// scanFields walks body as a flat run of TLV items, invoking visit once
// per item. Decoders accept tags in any order when wantOrder is violated
// under Warn (with an out-of-order diagnostic) or Allow (silently) and
// reject duplicate tags outright; an unrecognized tag is governed by the
// UnknownTags policy category.
func scanFields(policy codec.Policy, body []byte, wantOrder []byte, visit func(tag byte, value []byte) error) error {
	seen := make(map[byte]bool)
	lastRank := -1
	rank := make(map[byte]int, len(wantOrder))
	for i, t := range wantOrder {
		rank[t] = i
	}
	for len(body) > 0 {
		item, rest, err := readTLV(policy, body)
		if err != nil {
			return err
		}
		body = rest
		if seen[item.tag] {
			return mrtderr.New(mrtderr.EncodingMalformed, "icao94: duplicate tag 0x%02x", item.tag)
		}
		seen[item.tag] = true
		r, known := rank[item.tag]
		if !known {
			if !policy.AllowUnknownTag("icao94: unrecognized tag in public-key sequence") {
				return mrtderr.New(mrtderr.EncodingNonCanonical, "icao94: unrecognized tag 0x%02x", item.tag)
			}
			continue
		}
		if r < lastRank {
			if !policy.AllowTagOrder("icao94: tags out of spec order in public-key sequence") {
				return mrtderr.New(mrtderr.EncodingNonCanonical, "icao94: tags out of spec order")
			}
		}
		lastRank = r
		if err := visit(item.tag, item.value); err != nil {
			return err
		}
	}
	return nil
}

// RSAPublicKey is the decoded RSA public key carried by an ICAO 9303-11
// §9.4 RSA public-key sequence: OID, modulus n, public exponent e.
type RSAPublicKey struct {
	OID asn1.ObjectIdentifier
	N   *biguint.Uint
	E   *biguint.Uint
}

// DecodeRSAPublicKey decodes a BER-tagged SEQUENCE { 0x06 OID, 0x81
// modulus, 0x82 publicExponent }.
func DecodeRSAPublicKey(policy codec.Policy, der []byte) (RSAPublicKey, error) {
	body, err := readSequenceBody(policy, der)
	if err != nil {
		return RSAPublicKey{}, err
	}
	var out RSAPublicKey
	haveOID, haveN, haveE := false, false, false
	err = scanFields(policy, body, []byte{tagOID, tagField1, tagField2}, func(tag byte, value []byte) error {
		switch tag {
		case tagOID:
			full := append([]byte{0x06, byte(len(value))}, value...)
			if _, decErr := asn1.Unmarshal(full, &out.OID); decErr != nil {
				return mrtderr.New(mrtderr.EncodingMalformed, "icao94: malformed OID: %v", decErr)
			}
			haveOID = true
		case tagField1:
			out.N, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveN = true
		case tagField2:
			out.E, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveE = true
		}
		return nil
	})
	if err != nil {
		return RSAPublicKey{}, err
	}
	if !haveOID || !haveN || !haveE {
		return RSAPublicKey{}, mrtderr.New(mrtderr.EncodingMalformed, "icao94: RSA public key sequence missing a required field")
	}
	return out, nil
}

// DHPublicKey is the decoded Diffie-Hellman public key carried by an
// ICAO 9303-11 §9.4 DH public-key sequence: OID, p, q, g, y.
type DHPublicKey struct {
	OID  asn1.ObjectIdentifier
	P, Q *biguint.Uint
	G, Y *biguint.Uint
}

// DecodeDHPublicKey decodes a BER-tagged SEQUENCE { 0x06 OID, 0x81 p,
// 0x82 q, 0x83 g, 0x84 y }.
func DecodeDHPublicKey(policy codec.Policy, der []byte) (DHPublicKey, error) {
	body, err := readSequenceBody(policy, der)
	if err != nil {
		return DHPublicKey{}, err
	}
	var out DHPublicKey
	haveOID, haveP, haveQ, haveG, haveY := false, false, false, false, false
	err = scanFields(policy, body, []byte{tagOID, tagField1, tagField2, tagField3, tagField4}, func(tag byte, value []byte) error {
		switch tag {
		case tagOID:
			if _, decErr := asn1.Unmarshal(append([]byte{0x06, byte(len(value))}, value...), &out.OID); decErr != nil {
				return mrtderr.New(mrtderr.EncodingMalformed, "icao94: malformed OID: %v", decErr)
			}
			haveOID = true
		case tagField1:
			out.P, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveP = true
		case tagField2:
			out.Q, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveQ = true
		case tagField3:
			out.G, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveG = true
		case tagField4:
			out.Y, err = DecodeInteger(policy, len(value)*8, value)
			if err != nil {
				return err
			}
			haveY = true
		}
		return nil
	})
	if err != nil {
		return DHPublicKey{}, err
	}
	if !haveOID || !haveP || !haveG || !haveY {
		return DHPublicKey{}, mrtderr.New(mrtderr.EncodingMalformed, "icao94: DH public key sequence missing a required field")
	}
	_ = haveQ // q (subgroup order) is optional in some DH SPKI encodings seen in the wild
	return out, nil
}
