package codec

import (
	"crypto"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/asn1"

	"github.com/go-mrtd/crypto9303/mrtderr"
)

// oidToHash and hashToOID mirror, in the opposite direction, the
// crypto.Hash-keyed DigestInfo prefix table in
// other_examples/20de0bc9_bastionzero-keysplitting__rsa.go.go: there the
// table maps a hash to its DER prefix bytes; here it maps the digest OID
// carried by a DigestAlgorithmIdentifier to the crypto.Hash that
// implements it, and back for encoding.
var oidToHash = map[string]crypto.Hash{
	OIDSHA1.String():   crypto.SHA1,
	OIDSHA256.String(): crypto.SHA256,
	OIDSHA384.String(): crypto.SHA384,
	OIDSHA512.String(): crypto.SHA512,
}

var hashToOID = map[crypto.Hash]asn1.ObjectIdentifier{
	crypto.SHA1:   OIDSHA1,
	crypto.SHA256: OIDSHA256,
	crypto.SHA384: OIDSHA384,
	crypto.SHA512: OIDSHA512,
}

// HashByOID resolves a digest OID to the crypto.Hash implementing it,
// failing AlgorithmUnsupported for anything outside SHA-1/256/384/512.
func HashByOID(oid asn1.ObjectIdentifier) (crypto.Hash, error) {
	h, ok := oidToHash[oid.String()]
	if !ok {
		return 0, mrtderr.New(mrtderr.AlgorithmUnsupported, "codec: unsupported digest OID %v", oid)
	}
	return h, nil
}

// OIDByHash resolves a crypto.Hash to its digest OID.
func OIDByHash(h crypto.Hash) (asn1.ObjectIdentifier, error) {
	oid, ok := hashToOID[h]
	if !ok {
		return nil, mrtderr.New(mrtderr.AlgorithmUnsupported, "codec: unsupported hash %v", h)
	}
	return oid, nil
}
