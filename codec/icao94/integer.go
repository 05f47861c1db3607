// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package icao94

import (
	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/codec"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// EncodeInteger encodes x as a minimal big-endian byte string (no
// leading zero byte, except that zero itself encodes as a single 0x00
// byte), per ICAO 9303-11 §9.4.1.
func EncodeInteger(x *biguint.Uint) []byte {
	raw := x.Bytes()
	i := 0
	for i < len(raw)-1 && raw[i] == 0 {
		i++
	}
	return raw[i:]
}

// DecodeInteger decodes a minimal big-endian integer into a Uint of the
// declared bit width. Under Strict policy a leading zero byte (where the
// value would still fit without it) is rejected as EncodingNonCanonical;
// Warn accepts it with a diagnostic, Allow accepts it silently.
func DecodeInteger(policy codec.Policy, bits int, b []byte) (*biguint.Uint, error) {
	if len(b) == 0 {
		return nil, mrtderr.New(mrtderr.EncodingMalformed, "icao94: empty integer encoding")
	}
	if len(b) > 1 && b[0] == 0x00 {
		if !policy.AllowInteger("icao94: non-minimal integer encoding (leading zero byte)") {
			return nil, mrtderr.New(mrtderr.EncodingNonCanonical, "icao94: non-minimal integer encoding (leading zero byte)")
		}
	}
	return biguint.FromBytes(bits, b), nil
}
