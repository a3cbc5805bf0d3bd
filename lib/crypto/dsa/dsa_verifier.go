package dsa

import (
	"crypto/sha1"

	"github.com/go-i2p/go-keymgr/lib/crypto/types"
	"github.com/go-i2p/logger"
)

// DSAVerifier adapts a DSAKey's public fields to the shared Verifier
// interface.
type DSAVerifier struct {
	k *DSAKey
}

var _ types.Verifier = &DSAVerifier{}

// create a new dsa verifier
func (k *DSAKey) NewVerifier() (types.Verifier, error) {
	log.Debug("Creating new DSA verifier")
	return &DSAVerifier{k: k}, nil
}

// verify data with a dsa public key
func (v *DSAVerifier) Verify(data, sig []byte) (err error) {
	log.WithFields(logger.Fields{
		"data_length": len(data),
		"sig_length":  len(sig),
	}).Debug("Verifying DSA signature")
	h := sha1.Sum(data)
	err = v.VerifyHash(h[:], sig)
	return
}

// verify hash of data with a dsa public key
func (v *DSAVerifier) VerifyHash(h, sig []byte) error {
	ok, err := v.k.Verify(h, sig)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("Invalid DSA signature")
		return types.ErrInvalidSignature
	}
	return nil
}
