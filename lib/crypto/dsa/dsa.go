// Package dsa wraps the DSA primitives behind an owned key object that is
// built from, and exported back to, portable byte-string key material.
package dsa

import (
	"crypto/dsa"
	"crypto/rand"

	"github.com/go-i2p/go-keymgr/lib/crypto/bigint"
	"github.com/go-i2p/go-keymgr/lib/crypto/types"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// KeyMaterial carries the numeric fields of a DSA key as minimal big-endian
// unsigned byte strings. A nil X marks a public-only record. It is a
// transport structure: no arithmetic invariants are checked here.
type KeyMaterial struct {
	P []byte
	Q []byte
	G []byte
	Y []byte
	X []byte
}

// DSAKey owns a native DSA key structure. Public-only keys leave the private
// exponent unset and record that in hasPrivate. A DSAKey is never mutated
// after construction, so concurrent reads need no locking.
type DSAKey struct {
	key        *dsa.PrivateKey
	hasPrivate bool
}

// HasPrivate reports whether the private exponent is present.
func (k *DSAKey) HasPrivate() bool {
	return k.hasPrivate
}

// BitSize returns the bit length of the modulus p.
func (k *DSAKey) BitSize() int {
	return k.key.P.BitLen()
}

// CreateKey builds a DSAKey from portable key material. With private set,
// the record must carry the private exponent x. Each field must decode to a
// positive integer; beyond that the material is trusted as-is, no
// y == g^x mod p consistency check is performed.
func CreateKey(material KeyMaterial, private bool) (*DSAKey, error) {
	log.WithFields(logger.Fields{
		"at":      "CreateKey",
		"private": private,
	}).Debug("Creating DSA key from key material")

	key := new(dsa.PrivateKey)

	// p
	key.P = bigint.Decode(material.P)
	if key.P.Sign() <= 0 {
		return nil, invalidField("p")
	}

	// q
	key.Q = bigint.Decode(material.Q)
	if key.Q.Sign() <= 0 {
		return nil, invalidField("q")
	}

	// g
	key.G = bigint.Decode(material.G)
	if key.G.Sign() <= 0 {
		return nil, invalidField("g")
	}

	// pub_key (y)
	key.Y = bigint.Decode(material.Y)
	if key.Y.Sign() <= 0 {
		return nil, invalidField("y")
	}

	if !private {
		log.Debug("DSA public key created successfully")
		return &DSAKey{key: key}, nil
	}

	if material.X == nil {
		log.Error("Key material has no private exponent")
		return nil, types.ErrMissingPrivateKey
	}
	// priv_key (x)
	key.X = bigint.Decode(material.X)
	if key.X.Sign() <= 0 {
		return nil, invalidField("x")
	}

	log.Debug("DSA private key created successfully")
	return &DSAKey{key: key, hasPrivate: true}, nil
}

func invalidField(name string) error {
	log.WithField("field", name).Error("Non-positive DSA key field")
	return oops.Errorf("field %s: %w", name, types.ErrInvalidKeyMaterial)
}

// paramSizes maps a requested modulus bit size to the parameter sizes the
// generation primitive supports.
var paramSizes = map[int]dsa.ParameterSizes{
	1024: dsa.L1024N160,
	2048: dsa.L2048N256,
	3072: dsa.L3072N256,
}

// GenerateKey generates fresh DSA domain parameters of the requested modulus
// bit size and a key pair under them. The result always carries the private
// exponent.
func GenerateKey(bits int) (*DSAKey, error) {
	log.WithField("bits", bits).Debug("Generating DSA key pair")

	sizes, ok := paramSizes[bits]
	if !ok {
		log.WithField("bits", bits).Error("Unsupported DSA modulus size")
		return nil, oops.Errorf("unsupported modulus size %d: %w", bits, types.ErrGenerationFailed)
	}

	key := new(dsa.PrivateKey)
	if err := dsa.GenerateParameters(&key.Parameters, rand.Reader, sizes); err != nil {
		log.WithError(err).Error("Failed to generate DSA domain parameters")
		return nil, oops.Errorf("generating parameters: %v: %w", err, types.ErrGenerationFailed)
	}
	if err := dsa.GenerateKey(key, rand.Reader); err != nil {
		log.WithError(err).Error("Failed to generate DSA key pair")
		return nil, oops.Errorf("generating key pair: %v: %w", err, types.ErrGenerationFailed)
	}

	log.Debug("DSA key pair generated successfully")
	return &DSAKey{key: key, hasPrivate: true}, nil
}
