package dsa

import (
	"crypto/sha1"

	"github.com/go-i2p/go-keymgr/lib/crypto/types"
)

// DSASigner adapts a private DSAKey to the shared Signer interface.
type DSASigner struct {
	k *DSAKey
}

var _ types.Signer = &DSASigner{}

// create a new dsa signer
func (k *DSAKey) NewSigner() (types.Signer, error) {
	log.Debug("Creating new DSA signer")
	if !k.hasPrivate {
		log.Error("Cannot create a DSA signer without a private key")
		return nil, types.ErrMissingPrivateKey
	}
	return &DSASigner{k: k}, nil
}

func (ds *DSASigner) Sign(data []byte) (sig []byte, err error) {
	log.WithField("data_length", len(data)).Debug("Signing data with DSA")
	h := sha1.Sum(data)
	sig, err = ds.SignHash(h[:])
	return
}

func (ds *DSASigner) SignHash(h []byte) (sig []byte, err error) {
	return ds.k.Sign(h)
}
