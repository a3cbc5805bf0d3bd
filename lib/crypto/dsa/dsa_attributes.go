package dsa

import (
	"github.com/go-i2p/go-keymgr/lib/crypto/bigint"
	"github.com/go-i2p/go-keymgr/lib/crypto/types"
)

// PublicAttributes exports the public fields p, q, g and y as portable key
// material. The private exponent is left absent.
func (k *DSAKey) PublicAttributes() (KeyMaterial, error) {
	log.WithField("at", "PublicAttributes").Debug("Extracting DSA public attributes")

	if k.key.P == nil || k.key.Q == nil || k.key.G == nil || k.key.Y == nil {
		log.Error("DSA key is missing public fields")
		return KeyMaterial{}, types.ErrIncompleteKey
	}

	return KeyMaterial{
		P: bigint.Encode(k.key.P),
		Q: bigint.Encode(k.key.Q),
		G: bigint.Encode(k.key.G),
		Y: bigint.Encode(k.key.Y),
	}, nil
}

// Attributes exports all five fields, including the private exponent x.
func (k *DSAKey) Attributes() (KeyMaterial, error) {
	log.WithField("at", "Attributes").Debug("Extracting DSA attributes")

	if !k.hasPrivate {
		log.Error("Cannot extract private attributes of a public-only DSA key")
		return KeyMaterial{}, types.ErrMissingPrivateKey
	}

	material, err := k.PublicAttributes()
	if err != nil {
		return KeyMaterial{}, err
	}
	material.X = bigint.Encode(k.key.X)
	return material, nil
}

// Equals reports whether both keys hold the same numeric fields and the
// same private/public status.
func (k *DSAKey) Equals(other *DSAKey) bool {
	if k.hasPrivate != other.hasPrivate {
		return false
	}
	if k.key.P.Cmp(other.key.P) != 0 || k.key.Q.Cmp(other.key.Q) != 0 ||
		k.key.G.Cmp(other.key.G) != 0 || k.key.Y.Cmp(other.key.Y) != 0 {
		return false
	}
	if !k.hasPrivate {
		return true
	}
	return k.key.X.Cmp(other.key.X) == 0
}
