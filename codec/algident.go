package codec

import (
	"crypto"
	goasn1 "encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/go-mrtd/crypto9303/mrtderr"
)

// AlgorithmParameters is the Absent-vs-explicit-NULL parameters shape
// every AlgorithmIdentifier carries, grounded on
// original_source/src/asn1/signature_algorithm_identifier.rs's two-variant
// parameters type: re-encoding must reproduce whichever of the two forms
// was decoded, since both are valid DER and not interchangeable bit for
// bit.
type AlgorithmParameters int

const (
	ParametersAbsent AlgorithmParameters = iota
	ParametersNull
)

// DigestAlgorithmIdentifier is a digest OID paired with its parameters
// presence: the parameters field is kept as-is (Absent vs. explicit
// NULL) so re-encoding round-trips bit-exactly.
type DigestAlgorithmIdentifier struct {
	OID        goasn1.ObjectIdentifier
	Parameters AlgorithmParameters
}

// Hash resolves the digest algorithm's crypto.Hash implementation.
func (d DigestAlgorithmIdentifier) Hash() (crypto.Hash, error) {
	return HashByOID(d.OID)
}

// Marshal encodes the AlgorithmIdentifier SEQUENCE.
func (d DigestAlgorithmIdentifier) Marshal(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(d.OID)
		if d.Parameters == ParametersNull {
			b.AddASN1NULL()
		}
	})
}

// ParseDigestAlgorithmIdentifier decodes a DigestAlgorithmIdentifier
// SEQUENCE from in, consuming it.
func ParseDigestAlgorithmIdentifier(in *cryptobyte.String) (DigestAlgorithmIdentifier, error) {
	var seq cryptobyte.String
	if !in.ReadASN1(&seq, asn1.SEQUENCE) {
		return DigestAlgorithmIdentifier{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing AlgorithmIdentifier SEQUENCE")
	}
	var oid goasn1.ObjectIdentifier
	if !seq.ReadASN1ObjectIdentifier(&oid) {
		return DigestAlgorithmIdentifier{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing algorithm OID")
	}
	params := ParametersAbsent
	if !seq.Empty() {
		if !seq.SkipASN1(asn1.NULL) {
			return DigestAlgorithmIdentifier{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: unexpected AlgorithmIdentifier parameters")
		}
		params = ParametersNull
	}
	if !seq.Empty() {
		return DigestAlgorithmIdentifier{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: trailing AlgorithmIdentifier data")
	}
	return DigestAlgorithmIdentifier{OID: oid, Parameters: params}, nil
}

// MaskGenAlgorithm is RsaPssParameters' maskGenAlgorithm field: a tagged
// variant of Mgf1(digest) plus a catch-all for any other registered MGF.
type MaskGenAlgorithm struct {
	// Mgf1 holds the wrapped digest when this is the MGF1 variant.
	Mgf1    DigestAlgorithmIdentifier
	IsMgf1  bool
	OtherOID goasn1.ObjectIdentifier
}

func defaultMGF1SHA1() MaskGenAlgorithm {
	return MaskGenAlgorithm{
		Mgf1:   DigestAlgorithmIdentifier{OID: OIDSHA1, Parameters: ParametersNull},
		IsMgf1: true,
	}
}

// Marshal encodes the maskGenAlgorithm AlgorithmIdentifier.
func (m MaskGenAlgorithm) Marshal(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		if m.IsMgf1 {
			b.AddASN1ObjectIdentifier(OIDMGF1)
			var inner cryptobyte.Builder
			m.Mgf1.Marshal(&inner)
			bytes, _ := inner.Bytes()
			b.AddBytes(bytes)
		} else {
			b.AddASN1ObjectIdentifier(m.OtherOID)
		}
	})
}

// ParseMaskGenAlgorithm decodes a maskGenAlgorithm AlgorithmIdentifier.
func ParseMaskGenAlgorithm(in *cryptobyte.String) (MaskGenAlgorithm, error) {
	var seq cryptobyte.String
	if !in.ReadASN1(&seq, asn1.SEQUENCE) {
		return MaskGenAlgorithm{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing maskGenAlgorithm SEQUENCE")
	}
	var oid goasn1.ObjectIdentifier
	if !seq.ReadASN1ObjectIdentifier(&oid) {
		return MaskGenAlgorithm{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: missing maskGenAlgorithm OID")
	}
	if !oid.Equal(OIDMGF1) {
		return MaskGenAlgorithm{OtherOID: oid}, nil
	}
	digest, err := ParseDigestAlgorithmIdentifier(&seq)
	if err != nil {
		return MaskGenAlgorithm{}, err
	}
	return MaskGenAlgorithm{Mgf1: digest, IsMgf1: true}, nil
}

// RsaPssParameters is RFC 8017's RSASSA-PSS-params SEQUENCE, with its
// tagged-default fields: hashAlgorithm [0] default SHA-1,
// maskGenAlgorithm [1] default MGF1/SHA-1, saltLength [2] default 20,
// trailerField [3] default 1. Defaults are restored for omitted fields
// on decode and only re-emitted when they differ from the default on
// encode.
type RsaPssParameters struct {
	HashAlgorithm    DigestAlgorithmIdentifier
	MaskGenAlgorithm MaskGenAlgorithm
	SaltLength       int64
	TrailerField     int64
}

// DefaultRsaPssParameters returns the RFC 8017 defaults: SHA-1,
// MGF1/SHA-1, 20-byte salt, trailer field 1.
func DefaultRsaPssParameters() RsaPssParameters {
	return RsaPssParameters{
		HashAlgorithm:    DigestAlgorithmIdentifier{OID: OIDSHA1, Parameters: ParametersNull},
		MaskGenAlgorithm: defaultMGF1SHA1(),
		SaltLength:       20,
		TrailerField:     1,
	}
}

const (
	tagHashAlgorithm    = 0
	tagMaskGenAlgorithm = 1
	tagSaltLength       = 2
	tagTrailerField     = 3
)

// Marshal encodes the RSASSA-PSS-params SEQUENCE, emitting each field
// only when it differs from its RFC 8017 default.
func (p RsaPssParameters) Marshal() ([]byte, error) {
	def := DefaultRsaPssParameters()
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		if !p.HashAlgorithm.equalOID(def.HashAlgorithm) {
			b.AddASN1(asn1.Tag(tagHashAlgorithm).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
				p.HashAlgorithm.Marshal(b)
			})
		}
		if p.MaskGenAlgorithm.IsMgf1 != def.MaskGenAlgorithm.IsMgf1 ||
			!p.MaskGenAlgorithm.Mgf1.equalOID(def.MaskGenAlgorithm.Mgf1) {
			b.AddASN1(asn1.Tag(tagMaskGenAlgorithm).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
				p.MaskGenAlgorithm.Marshal(b)
			})
		}
		if p.SaltLength != def.SaltLength {
			b.AddASN1(asn1.Tag(tagSaltLength).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
				b.AddASN1Int64(p.SaltLength)
			})
		}
		if p.TrailerField != def.TrailerField {
			b.AddASN1(asn1.Tag(tagTrailerField).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
				b.AddASN1Int64(p.TrailerField)
			})
		}
	})
	return b.Bytes()
}

func (d DigestAlgorithmIdentifier) equalOID(other DigestAlgorithmIdentifier) bool {
	return d.OID.Equal(other.OID)
}

// ParseRsaPssParameters decodes an RSASSA-PSS-params SEQUENCE, restoring
// RFC 8017 defaults for any field omitted in der.
func ParseRsaPssParameters(der []byte) (RsaPssParameters, error) {
	p := DefaultRsaPssParameters()
	in := cryptobyte.String(der)
	var seq cryptobyte.String
	if !in.ReadASN1(&seq, asn1.SEQUENCE) || !in.Empty() {
		return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid RSASSA-PSS-params SEQUENCE")
	}

	var present cryptobyte.String
	if seq.PeekASN1Tag(asn1.Tag(tagHashAlgorithm).ContextSpecific().Constructed()) {
		if !seq.ReadASN1(&present, asn1.Tag(tagHashAlgorithm).ContextSpecific().Constructed()) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [0] hashAlgorithm")
		}
		h, err := ParseDigestAlgorithmIdentifier(&present)
		if err != nil {
			return RsaPssParameters{}, err
		}
		p.HashAlgorithm = h
	}
	if seq.PeekASN1Tag(asn1.Tag(tagMaskGenAlgorithm).ContextSpecific().Constructed()) {
		if !seq.ReadASN1(&present, asn1.Tag(tagMaskGenAlgorithm).ContextSpecific().Constructed()) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [1] maskGenAlgorithm")
		}
		m, err := ParseMaskGenAlgorithm(&present)
		if err != nil {
			return RsaPssParameters{}, err
		}
		p.MaskGenAlgorithm = m
	}
	if seq.PeekASN1Tag(asn1.Tag(tagSaltLength).ContextSpecific().Constructed()) {
		if !seq.ReadASN1(&present, asn1.Tag(tagSaltLength).ContextSpecific().Constructed()) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [2] saltLength")
		}
		if !present.ReadASN1Int64WithTag(&p.SaltLength, asn1.INTEGER) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [2] saltLength integer")
		}
	}
	if seq.PeekASN1Tag(asn1.Tag(tagTrailerField).ContextSpecific().Constructed()) {
		if !seq.ReadASN1(&present, asn1.Tag(tagTrailerField).ContextSpecific().Constructed()) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [3] trailerField")
		}
		if !present.ReadASN1Int64WithTag(&p.TrailerField, asn1.INTEGER) {
			return RsaPssParameters{}, mrtderr.New(mrtderr.EncodingMalformed, "codec: invalid [3] trailerField integer")
		}
	}
	if p.TrailerField != 1 {
		return RsaPssParameters{}, mrtderr.New(mrtderr.AlgorithmUnsupported, "codec: unsupported trailerField %d", p.TrailerField)
	}
	return p, nil
}
