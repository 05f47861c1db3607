// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package icao94

import (
	"bytes"
	"testing"

	"github.com/go-mrtd/crypto9303/codec"
)

// buildTLV assembles a BER tag-length-value item for use in hand-built
// test fixtures.
func buildTLV(tag byte, value []byte) []byte {
	out := []byte{tag}
	out = append(out, EncodeLength(len(value))...)
	out = append(out, value...)
	return out
}

func TestDecodeRSAPublicKey(t *testing.T) {
	oid := buildTLV(tagOID, []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x01}) // rsaEncryption
	n := buildTLV(tagField1, []byte{0x01, 0x00, 0x01, 0x02, 0x03})
	e := buildTLV(tagField2, []byte{0x01, 0x00, 0x01})
	body := append(append([]byte{}, oid...), append(n, e...)...)
	der := buildTLV(tagSequence, body)

	key, err := DecodeRSAPublicKey(codec.StrictPolicy(), der)
	if err != nil {
		t.Fatalf("DecodeRSAPublicKey: %v", err)
	}
	if !bytes.Equal(key.N.Bytes()[len(key.N.Bytes())-5:], []byte{0x01, 0x00, 0x01, 0x02, 0x03}) {
		t.Errorf("decoded modulus mismatch: % x", key.N.Bytes())
	}
	if key.E.BigInt().Int64() != 65537 {
		t.Errorf("decoded exponent = %d, want 65537", key.E.BigInt().Int64())
	}
}

func TestDecodeRSAPublicKeyRejectsDuplicateTag(t *testing.T) {
	oid := buildTLV(tagOID, []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x01})
	n1 := buildTLV(tagField1, []byte{0x01, 0x02})
	n2 := buildTLV(tagField1, []byte{0x03, 0x04})
	e := buildTLV(tagField2, []byte{0x01, 0x00, 0x01})
	body := append(append(append([]byte{}, oid...), n1...), append(n2, e...)...)
	der := buildTLV(tagSequence, body)

	if _, err := DecodeRSAPublicKey(codec.StrictPolicy(), der); err == nil {
		t.Fatal("expected an error for a duplicate modulus tag")
	}
}

func TestDecodeDHPublicKeyAcceptsOutOfOrderTagsUnderWarn(t *testing.T) {
	oid := buildTLV(tagOID, []byte{0x2A, 0x86, 0x48, 0x86, 0xF6, 0x7D, 0x02, 0x02, 0x01})
	p := buildTLV(tagField1, []byte{0x01, 0x02})
	q := buildTLV(tagField2, []byte{0x03})
	g := buildTLV(tagField3, []byte{0x02})
	y := buildTLV(tagField4, []byte{0x04, 0x05})
	// Deliberately out of spec order: g before p.
	body := append(append(append(append([]byte{}, oid...), g...), p...), append(q, y...)...)
	der := buildTLV(tagSequence, body)

	if _, err := DecodeDHPublicKey(codec.StrictPolicy(), der); err == nil {
		t.Fatal("expected strict policy to reject out-of-order tags")
	}

	var diagnostics []codec.Diagnostic
	warn := codec.Policy{
		TagOrder: codec.Warn,
		Diagnostics: func(d codec.Diagnostic) {
			diagnostics = append(diagnostics, d)
		},
	}
	key, err := DecodeDHPublicKey(warn, der)
	if err != nil {
		t.Fatalf("warn policy should accept out-of-order tags, got: %v", err)
	}
	if key.G.BigInt().Int64() != 2 {
		t.Errorf("decoded g = %d, want 2", key.G.BigInt().Int64())
	}
	if len(diagnostics) == 0 {
		t.Error("expected at least one out-of-order-tag diagnostic")
	}
}
