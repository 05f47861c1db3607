// Copyright (c) 2024 The crypto9303 developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsapss

import (
	"bytes"
	"crypto"

	"github.com/go-mrtd/crypto9303/biguint"
	"github.com/go-mrtd/crypto9303/codec"
	"github.com/go-mrtd/crypto9303/modring"
	"github.com/go-mrtd/crypto9303/mrtderr"
)

// PublicKey is an RSA public key (ring, e): ring is F_n for the
// (composite) RSA modulus n, e is the public exponent. modring.Ring does
// not itself require a prime modulus (Montgomery REDC is correct for
// any odd modulus), so the same ring machinery used for the prime
// fields elsewhere in this module also carries RSA's composite modulus.
type PublicKey struct {
	Ring *modring.Ring
	E    *biguint.Uint
}

// NewPublicKey builds a PublicKey from the modulus n and public
// exponent e.
func NewPublicKey(n *biguint.Uint, e *biguint.Uint) (PublicKey, error) {
	ring, err := modring.New(n)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{Ring: ring, E: e}, nil
}

// modBytesLen returns the modulus's byte length, ceil(k/8) for k =
// bit-length of n. Since a Uint's declared bit width is already the RSA
// key size, this is simply the fixed-length byte encoding's length.
func (pub PublicKey) modBytesLen() int {
	return (pub.Ring.Bits() + 7) / 8
}

// Verify implements RFC 8017 §9.1.2 EMSA-PSS-VERIFY plus the RSAVP1
// exponentiation wrapped around it. message is hashed inside this call,
// matching RFC 8017's own EMSA-PSS-VERIFY, which takes the message M,
// not a pre-hashed digest.
func Verify(pub PublicKey, message, signature []byte, p codec.RsaPssParameters) error {
	hash, err := p.HashAlgorithm.Hash()
	if err != nil {
		return err
	}
	mgfHash := hash
	if p.MaskGenAlgorithm.IsMgf1 {
		mgfHash, err = p.MaskGenAlgorithm.Mgf1.Hash()
		if err != nil {
			return err
		}
	} else {
		return mrtderr.New(mrtderr.AlgorithmUnsupported, "rsapss: unsupported mask generation function")
	}
	if p.TrailerField != 1 {
		return mrtderr.New(mrtderr.AlgorithmUnsupported, "rsapss: unsupported trailerField %d", p.TrailerField)
	}

	k := pub.modBytesLen()
	if len(signature) != k {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: signature length %d != k=%d", len(signature), k)
	}
	sigInt := biguint.FromBytes(pub.Ring.Bits(), signature)
	if sigInt.Cmp(pub.Ring.Modulus()) >= 0 {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: signature representative >= n")
	}

	// EM = signature^e mod n.
	emElem := modring.From(pub.Ring, sigInt).PowCT(pub.E)
	emBits := pub.Ring.Bits() - 1 // k-1 where k is n's bit length, per RFC 8017 §9.1.2 step 2
	emLen := (emBits + 7) / 8
	em := emElem.ToUint().Bytes() // fixed ceil(bits/8) bytes, big-endian

	// When k-1 is a multiple of 8, the fixed-length k-byte encoding's
	// leading octet must be 0x00, discarded to get the emLen-byte EM.
	if len(em) == emLen+1 {
		if em[0] != 0x00 {
			return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: EM leading octet not zero")
		}
		em = em[1:]
	} else if len(em) != emLen {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: unexpected EM length %d, want %d", len(em), emLen)
	}

	return emsaPSSVerify(hash, mgfHash, message, em, emBits, int(p.SaltLength))
}

// emsaPSSVerify implements RFC 8017 §9.1.2, steps 3-9, given the
// already-exponentiated and length-normalized encoded message em.
func emsaPSSVerify(hash, mgfHash crypto.Hash, message, em []byte, emBits, sLen int) error {
	hLen := hash.Size()
	emLen := len(em)

	if emLen < hLen+sLen+2 {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: intended encoded message length too short")
	}
	if em[emLen-1] != 0xBC {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: EM does not end in 0xBC")
	}

	maskedDB := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	topBits := 8*emLen - emBits
	if topBits > 0 && em[0]&(0xFF<<(8-topBits)) != 0 {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: nonzero bits set above emBits")
	}

	dbMask := MGF1(mgfHash, h, len(maskedDB))
	db := make([]byte, len(maskedDB))
	copy(db, maskedDB)
	xorBytes(db, dbMask)
	if topBits > 0 {
		db[0] &= 0xFF >> topBits
	}

	zeroLen := emLen - hLen - sLen - 2
	for i := 0; i < zeroLen; i++ {
		if db[i] != 0x00 {
			return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: DB padding not all zero")
		}
	}
	if db[zeroLen] != 0x01 {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: DB missing 0x01 separator")
	}
	salt := db[zeroLen+1:]
	if len(salt) != sLen {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: salt length mismatch")
	}

	mHasher := hash.New()
	mHasher.Write(message)
	mHash := mHasher.Sum(nil)

	hPrimeInput := make([]byte, 0, 8+len(mHash)+len(salt))
	hPrimeInput = append(hPrimeInput, make([]byte, 8)...)
	hPrimeInput = append(hPrimeInput, mHash...)
	hPrimeInput = append(hPrimeInput, salt...)
	hPrimeHasher := hash.New()
	hPrimeHasher.Write(hPrimeInput)
	hPrime := hPrimeHasher.Sum(nil)

	if !bytes.Equal(h, hPrime) {
		return mrtderr.New(mrtderr.SignatureInvalid, "rsapss: H != H'")
	}
	return nil
}
