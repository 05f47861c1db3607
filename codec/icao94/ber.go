// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package icao94 implements the ICAO 9303-11 §9.4 public-key encoding
// used for authenticated-token key exchange (Chip Authentication/PACE
// public keys): BER length encoding, minimal big-endian integers, and
// tagged RSA/DH public-key sequences. EC points delegate to codec/bsi3's
// uncompressed encoding.
package icao94

import (
	"github.com/go-mrtd/crypto9303/codec"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// EncodeLength encodes n in BER length form: a single byte if n < 128,
// otherwise 0x80|k followed by k big-endian bytes of n.
func EncodeLength(n int) []byte {
	if n < 0 {
		panic("icao94: negative length")
	}
	if n < 128 {
		return []byte{byte(n)}
	}
	var be []byte
	for v := n; v > 0; v >>= 8 {
		be = append([]byte{byte(v)}, be...)
	}
	out := make([]byte, 0, 1+len(be))
	out = append(out, 0x80|byte(len(be)))
	out = append(out, be...)
	return out
}

// DecodeLength decodes a BER length field from the front of b, returning
// the value, the number of bytes consumed, and an error. Policy governs
// whether a non-minimal long-form length (a leading zero byte in the
// length's own big-endian encoding) is rejected (Strict), accepted with a
// diagnostic (Warn), or accepted silently (Allow).
func DecodeLength(policy codec.Policy, b []byte) (n, consumed int, err error) {
	if len(b) == 0 {
		return 0, 0, mrtderr.New(mrtderr.EncodingMalformed, "icao94: empty length field")
	}
	if b[0] < 0x80 {
		return int(b[0]), 1, nil
	}
	k := int(b[0] &^ 0x80)
	if k == 0 {
		return 0, 0, mrtderr.New(mrtderr.EncodingMalformed, "icao94: indefinite-length BER not supported")
	}
	if len(b) < 1+k {
		return 0, 0, mrtderr.New(mrtderr.EncodingMalformed, "icao94: truncated long-form length")
	}
	lenBytes := b[1 : 1+k]
	if lenBytes[0] == 0x00 {
		if !policy.AllowLength("icao94: non-minimal long-form length encoding") {
			return 0, 0, mrtderr.New(mrtderr.EncodingNonCanonical, "icao94: non-minimal long-form length encoding")
		}
	}
	v := 0
	for _, byt := range lenBytes {
		v = v<<8 | int(byt)
	}
	return v, 1 + k, nil
}
