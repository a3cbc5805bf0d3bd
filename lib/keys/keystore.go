package keys

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-i2p/go-keymgr/lib/crypto/dsa"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

func ensureDirectoryExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o700)
	}
	return nil
}

// KeyStore is an interface for storing and retrieving DSA keys
type KeyStore interface {
	KeyID() string
	// LoadKeys returns the stored key
	LoadKeys() (*dsa.DSAKey, error)
	// StoreKeys stores the key
	StoreKeys(k *dsa.DSAKey) error
}

// DSAKeyStore keeps one named DSA key as a PEM file under a directory.
type DSAKeyStore struct {
	dir  string
	name string
}

var _ KeyStore = &DSAKeyStore{}

func NewDSAKeyStore(dir, name string) *DSAKeyStore {
	log.WithFields(logger.Fields{
		"at":   "NewDSAKeyStore",
		"dir":  dir,
		"name": name,
	}).Debug("Creating new DSA key store")
	return &DSAKeyStore{
		dir:  dir,
		name: name,
	}
}

func (ks *DSAKeyStore) KeyID() string {
	return ks.name
}

// KeyPath returns the full path of the stored key file.
func (ks *DSAKeyStore) KeyPath() string {
	return filepath.Join(ks.dir, ks.name+".pem")
}

// StoreKeys writes the key to the store's path, creating the directory with
// 0700 permissions if needed.
func (ks *DSAKeyStore) StoreKeys(k *dsa.DSAKey) error {
	log.WithFields(logger.Fields{
		"at":  "StoreKeys",
		"dir": ks.dir,
	}).Debug("Storing DSA key to filesystem")

	// Use 0700 to protect private key material from other users
	if err := ensureDirectoryExists(ks.dir); err != nil {
		log.WithError(err).WithField("dir", ks.dir).Error("Failed to create keystore directory")
		return oops.Errorf("creating key directory: %v: %w", err, ErrKeyFileOpen)
	}

	return WriteKeyToFile(k, ks.KeyPath())
}

// LoadKeys reads the stored key back. A missing file yields
// ErrKeyFileNotFound; a present but unreadable or corrupt file is an error,
// never silently replaced.
func (ks *DSAKeyStore) LoadKeys() (*dsa.DSAKey, error) {
	log.WithFields(logger.Fields{
		"at":   "LoadKeys",
		"path": ks.KeyPath(),
	}).Debug("Loading DSA key from filesystem")
	return ReadKeyFromFile(ks.KeyPath())
}

// LoadOrCreateKeys loads the stored key, generating and storing a fresh key
// of the given modulus bit size only when no key file exists yet. Any other
// load failure (corrupt file, permission denied) is returned instead of
// overwriting existing key material.
func (ks *DSAKeyStore) LoadOrCreateKeys(bits int) (*dsa.DSAKey, error) {
	k, err := ks.LoadKeys()
	if err == nil {
		log.Debug("Loaded existing DSA key")
		return k, nil
	}
	if !errors.Is(err, ErrKeyFileNotFound) {
		log.WithError(err).Error("Existing key file could not be loaded, refusing to overwrite")
		return nil, err
	}

	k, err = dsa.GenerateKey(bits)
	if err != nil {
		return nil, err
	}
	if err := ks.StoreKeys(k); err != nil {
		return nil, err
	}
	log.WithField("path", ks.KeyPath()).Info("Generated and stored new DSA key")
	return k, nil
}
