// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec implements the shared ASN.1/DER codec machinery: the
// object identifier table, the Strict/Warn/Allow leniency policy, and
// the algorithm-identifier/SPKI structures used by both codec/bsi3 and
// codec/icao94. Wire encoding uses golang.org/x/crypto/cryptobyte, the
// same toolkit dromara-dongle's SPKI codec is built on.
package codec

import "encoding/asn1"

// Digest OIDs.
var (
	OIDSHA1   = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}
	OIDSHA256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
	OIDSHA384 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}
	OIDSHA512 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}

	OIDRSASSAPSS      = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}
	OIDMGF1           = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 8}
	OIDECPublicKey    = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	OIDDHPublicNumber = asn1.ObjectIdentifier{1, 2, 840, 10046, 2, 1}
	OIDRSAEncryption  = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
)
