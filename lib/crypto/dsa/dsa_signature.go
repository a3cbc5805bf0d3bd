package dsa

import (
	"crypto/dsa"
	"crypto/rand"
	"encoding/asn1"
	"math/big"

	"github.com/go-i2p/go-keymgr/lib/crypto/types"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// dsaSignature is the DER signature layout, SEQUENCE { r INTEGER, s INTEGER },
// byte-compatible with OpenSSL DSA_sign output.
type dsaSignature struct {
	R, S *big.Int
}

// Sign signs an already-computed message digest and returns the DER-encoded
// signature. The digest is passed to the primitive untouched; truncation to
// the subgroup size is the caller's concern.
func (k *DSAKey) Sign(digest []byte) ([]byte, error) {
	log.WithField("digest_length", len(digest)).Debug("Signing digest with DSA")

	if !k.hasPrivate {
		log.Error("Cannot sign with a public-only DSA key")
		return nil, types.ErrMissingPrivateKey
	}

	r, s, err := dsa.Sign(rand.Reader, k.key, digest)
	if err != nil {
		log.WithError(err).Error("DSA signing primitive failed")
		return nil, oops.Errorf("signing digest: %v: %w", err, types.ErrSignatureFailed)
	}

	sig, err := asn1.Marshal(dsaSignature{R: r, S: s})
	if err != nil {
		log.WithError(err).Error("Failed to encode DSA signature")
		return nil, oops.Errorf("encoding signature: %v: %w", err, types.ErrSignatureFailed)
	}

	log.WithField("sig_length", len(sig)).Debug("DSA signature created successfully")
	return sig, nil
}

// Verify checks a DER-encoded signature against a message digest. A
// well-formed signature that does not match yields (false, nil); a signature
// that cannot be parsed yields ErrVerificationFailed.
func (k *DSAKey) Verify(digest, sig []byte) (bool, error) {
	log.WithFields(logger.Fields{
		"digest_length": len(digest),
		"sig_length":    len(sig),
	}).Debug("Verifying DSA signature")

	var parsed dsaSignature
	rest, err := asn1.Unmarshal(sig, &parsed)
	if err != nil {
		log.WithError(err).Error("Malformed DSA signature encoding")
		return false, oops.Errorf("parsing signature: %v: %w", err, types.ErrVerificationFailed)
	}
	if len(rest) != 0 {
		log.WithField("trailing", len(rest)).Error("Trailing bytes after DSA signature")
		return false, oops.Errorf("trailing signature bytes: %w", types.ErrVerificationFailed)
	}
	if parsed.R == nil || parsed.S == nil || parsed.R.Sign() <= 0 || parsed.S.Sign() <= 0 {
		log.Error("DSA signature integers out of range")
		return false, oops.Errorf("signature integers out of range: %w", types.ErrVerificationFailed)
	}

	if !dsa.Verify(&k.key.PublicKey, digest, parsed.R, parsed.S) {
		log.Debug("DSA signature does not match digest")
		return false, nil
	}

	log.Debug("DSA signature verified successfully")
	return true, nil
}
