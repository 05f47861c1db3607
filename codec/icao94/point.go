// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package icao94

import (
	"github.com/go-mrtd/crypto9303/codec/bsi3"
	"github.com/go-mrtd/crypto9303/curve"
)

// EncodePoint encodes p as a TR-03111 uncompressed point, matching ICAO
// 9303-11 §9.4.1's EC point encoding.
func EncodePoint(p curve.Point) []byte {
	return bsi3.EncodePointUncompressed(p)
}

// DecodePoint decodes b against c, forwarding to the shared TR-03111
// point decoder (which accepts uncompressed, compressed, and infinity
// forms; ICAO 9303-11 §9.4.1 does not itself narrow the accepted forms
// on decode).
func DecodePoint(c *curve.Curve, b []byte) (curve.Point, error) {
	return bsi3.DecodePoint(c, b)
}
