package keys

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStoreStoreAndLoad(t *testing.T) {
	k := sharedTestKey(t)
	ks := NewDSAKeyStore(filepath.Join(t.TempDir(), "keys"), "node")

	require.NoError(t, ks.StoreKeys(k))

	loaded, err := ks.LoadKeys()
	require.NoError(t, err)
	assert.True(t, k.Equals(loaded))
	assert.Equal(t, "node", ks.KeyID())
}

func TestKeyStoreDirectoryPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping file permission test on Windows")
	}

	k := sharedTestKey(t)
	dir := filepath.Join(t.TempDir(), "keys")
	ks := NewDSAKeyStore(dir, "node")
	require.NoError(t, ks.StoreKeys(k))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestLoadOrCreateKeysRoundTrip(t *testing.T) {
	ks := NewDSAKeyStore(filepath.Join(t.TempDir(), "keys"), "fresh")

	created, err := ks.LoadOrCreateKeys(1024)
	require.NoError(t, err)
	assert.True(t, created.HasPrivate())

	loaded, err := ks.LoadOrCreateKeys(1024)
	require.NoError(t, err)
	assert.True(t, created.Equals(loaded))
}

func TestLoadOrCreateKeysRefusesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	ks := NewDSAKeyStore(dir, "node")
	require.NoError(t, os.WriteFile(ks.KeyPath(), []byte("garbage"), 0o600))

	_, err := ks.LoadOrCreateKeys(1024)
	require.Error(t, err)

	// the corrupt file must be left untouched
	data, readErr := os.ReadFile(ks.KeyPath())
	require.NoError(t, readErr)
	assert.Equal(t, []byte("garbage"), data)
}
