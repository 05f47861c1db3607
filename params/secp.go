package params

import "github.com/go-mrtd/crypto9303/curve"

// Secp256r1 is an alias for P256: ICAO and BSI documents name this curve
// secp256r1 as often as they name it NIST P-256, and both names should
// resolve to the same parameters.
func Secp256r1() (*curve.Curve, error) {
	return P256()
}

// Secp256k1 builds secp256k1. Not an ICAO/BSI-mandated curve, but kept
// as a named entry since curve's generic arithmetic is validated against
// it end to end.
func Secp256k1() (*curve.Curve, error) {
	return curve.New(curveParams(256,
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		"0000000000000000000000000000000000000000000000000000000000000000",
		"0000000000000000000000000000000000000000000000000000000000000007",
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		"1",
	))
}
