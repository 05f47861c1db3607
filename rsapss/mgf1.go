// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rsapss implements RSASSA-PSS signature verification (RFC 8017
// §9.1.2) and its MGF1 mask generation function. No signature
// generation: this reader only ever needs to check signatures it
// receives, never produce its own.
package rsapss

import (
	"crypto"
	"encoding/binary"
)

// MGF1 is PKCS #1's mask generation function 1: it concatenates
// Hash(seed || counter) for counter = 0, 1, 2, ... until at least
// maskLen bytes have been produced, then truncates to exactly maskLen.
func MGF1(hash crypto.Hash, seed []byte, maskLen int) []byte {
	h := hash.New()
	out := make([]byte, 0, maskLen+h.Size())
	var counter uint32
	for len(out) < maskLen {
		h.Reset()
		h.Write(seed)
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], counter)
		h.Write(buf[:])
		out = h.Sum(out)
		counter++
	}
	return out[:maskLen]
}

// xorBytes XORs src into dst in place; both must have the same length.
func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
