// Package keys persists DSA keys as PEM key files and provides a named
// on-disk key store over them.
package keys

import (
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"math/big"
	"os"

	"github.com/go-i2p/go-keymgr/lib/crypto/bigint"
	"github.com/go-i2p/go-keymgr/lib/crypto/dsa"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Sentinels are plain stdlib errors so that errors.Is can discriminate
// failure categories; call sites wrap them with oops.Errorf("...: %w", err).
var (
	ErrKeyFileOpen     = errors.New("cannot open key file")
	ErrKeyFileNotFound = errors.New("key file not found")
	ErrKeyEncoding     = errors.New("key encoding failed")
	ErrKeyDecoding     = errors.New("key decoding failed")
)

const (
	pemTypePrivate = "DSA PRIVATE KEY"
	pemTypePublic  = "PUBLIC KEY"
)

// oidDSA identifies the DSA algorithm (1.2.840.10040.4.1) in a
// SubjectPublicKeyInfo.
var oidDSA = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}

// dsaPrivateKeyASN1 is the OpenSSL DSAPrivateKey layout:
// SEQUENCE { version, p, q, g, pub_key, priv_key }.
type dsaPrivateKeyASN1 struct {
	Version int
	P, Q, G *big.Int
	Y, X    *big.Int
}

type dsaParameters struct {
	P, Q, G *big.Int
}

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters dsaParameters
}

// dsaPublicKeyInfo is the SubjectPublicKeyInfo layout; the bit string wraps
// a DER INTEGER holding y.
type dsaPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

// WriteKeyToFile serializes a DSA key to path. Private keys are written as
// an unencrypted "DSA PRIVATE KEY" block, public-only keys as a "PUBLIC KEY"
// SubjectPublicKeyInfo block. The file is created with 0600 permissions.
func WriteKeyToFile(k *dsa.DSAKey, path string) error {
	log.WithFields(logger.Fields{
		"at":      "WriteKeyToFile",
		"path":    path,
		"private": k.HasPrivate(),
	}).Debug("Writing DSA key file")

	block, err := encodeKey(k)
	if err != nil {
		log.WithError(err).Error("Failed to encode DSA key")
		return err
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.WithError(err).WithField("path", path).Error("Failed to write key file")
		return oops.Errorf("writing %s: %v: %w", path, err, ErrKeyFileOpen)
	}

	log.WithField("path", path).Debug("DSA key file written successfully")
	return nil
}

func encodeKey(k *dsa.DSAKey) (*pem.Block, error) {
	if k.HasPrivate() {
		material, err := k.Attributes()
		if err != nil {
			return nil, oops.Errorf("extracting attributes: %v: %w", err, ErrKeyEncoding)
		}
		der, err := asn1.Marshal(dsaPrivateKeyASN1{
			Version: 0,
			P:       bigint.Decode(material.P),
			Q:       bigint.Decode(material.Q),
			G:       bigint.Decode(material.G),
			Y:       bigint.Decode(material.Y),
			X:       bigint.Decode(material.X),
		})
		if err != nil {
			return nil, oops.Errorf("marshaling private key: %v: %w", err, ErrKeyEncoding)
		}
		return &pem.Block{Type: pemTypePrivate, Bytes: der}, nil
	}

	material, err := k.PublicAttributes()
	if err != nil {
		return nil, oops.Errorf("extracting public attributes: %v: %w", err, ErrKeyEncoding)
	}
	yDER, err := asn1.Marshal(bigint.Decode(material.Y))
	if err != nil {
		return nil, oops.Errorf("marshaling public value: %v: %w", err, ErrKeyEncoding)
	}
	der, err := asn1.Marshal(dsaPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			Algorithm: oidDSA,
			Parameters: dsaParameters{
				P: bigint.Decode(material.P),
				Q: bigint.Decode(material.Q),
				G: bigint.Decode(material.G),
			},
		},
		PublicKey: asn1.BitString{Bytes: yDER, BitLength: len(yDER) * 8},
	})
	if err != nil {
		return nil, oops.Errorf("marshaling public key info: %v: %w", err, ErrKeyEncoding)
	}
	return &pem.Block{Type: pemTypePublic, Bytes: der}, nil
}

// ReadKeyFromFile loads a PEM key file written by WriteKeyToFile, accepting
// both the private and the public container kind.
func ReadKeyFromFile(path string) (*dsa.DSAKey, error) {
	log.WithFields(logger.Fields{
		"at":   "ReadKeyFromFile",
		"path": path,
	}).Debug("Reading DSA key file")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.Errorf("%s: %w", path, ErrKeyFileNotFound)
		}
		return nil, oops.Errorf("reading %s: %v: %w", path, err, ErrKeyFileOpen)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		log.WithField("path", path).Error("No PEM block in key file")
		return nil, oops.Errorf("no PEM block in %s: %w", path, ErrKeyDecoding)
	}

	switch block.Type {
	case pemTypePrivate:
		return decodePrivateKey(block.Bytes)
	case pemTypePublic:
		return decodePublicKey(block.Bytes)
	default:
		log.WithField("pem_type", block.Type).Error("Unsupported PEM block type")
		return nil, oops.Errorf("unsupported PEM type %q: %w", block.Type, ErrKeyDecoding)
	}
}

func decodePrivateKey(der []byte) (*dsa.DSAKey, error) {
	var parsed dsaPrivateKeyASN1
	if _, err := asn1.Unmarshal(der, &parsed); err != nil {
		return nil, oops.Errorf("unmarshaling private key: %v: %w", err, ErrKeyDecoding)
	}
	k, err := dsa.CreateKey(dsa.KeyMaterial{
		P: bigint.Encode(parsed.P),
		Q: bigint.Encode(parsed.Q),
		G: bigint.Encode(parsed.G),
		Y: bigint.Encode(parsed.Y),
		X: bigint.Encode(parsed.X),
	}, true)
	if err != nil {
		return nil, oops.Errorf("importing private key: %v: %w", err, ErrKeyDecoding)
	}
	return k, nil
}

func decodePublicKey(der []byte) (*dsa.DSAKey, error) {
	var parsed dsaPublicKeyInfo
	if _, err := asn1.Unmarshal(der, &parsed); err != nil {
		return nil, oops.Errorf("unmarshaling public key info: %v: %w", err, ErrKeyDecoding)
	}
	if !parsed.Algorithm.Algorithm.Equal(oidDSA) {
		return nil, oops.Errorf("unexpected algorithm %v: %w", parsed.Algorithm.Algorithm, ErrKeyDecoding)
	}
	var y *big.Int
	if _, err := asn1.Unmarshal(parsed.PublicKey.RightAlign(), &y); err != nil {
		return nil, oops.Errorf("unmarshaling public value: %v: %w", err, ErrKeyDecoding)
	}
	k, err := dsa.CreateKey(dsa.KeyMaterial{
		P: bigint.Encode(parsed.Algorithm.Parameters.P),
		Q: bigint.Encode(parsed.Algorithm.Parameters.Q),
		G: bigint.Encode(parsed.Algorithm.Parameters.G),
		Y: bigint.Encode(y),
	}, false)
	if err != nil {
		return nil, oops.Errorf("importing public key: %v: %w", err, ErrKeyDecoding)
	}
	return k, nil
}
