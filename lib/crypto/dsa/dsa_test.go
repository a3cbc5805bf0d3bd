package dsa

import (
	"crypto/rand"
	"crypto/sha1"
	"errors"
	"sync"
	"testing"

	"github.com/go-i2p/go-keymgr/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKeyOnce sync.Once
	testKey     *DSAKey
	testKeyErr  error
)

// sharedTestKey generates one 1024-bit key per test run; parameter
// generation is too slow to repeat in every test.
func sharedTestKey(t *testing.T) *DSAKey {
	t.Helper()
	testKeyOnce.Do(func() {
		testKey, testKeyErr = GenerateKey(1024)
	})
	require.NoError(t, testKeyErr)
	return testKey
}

func testDigest(t *testing.T) []byte {
	t.Helper()
	msg := make([]byte, 64)
	_, err := rand.Read(msg)
	require.NoError(t, err)
	h := sha1.Sum(msg)
	return h[:]
}

func TestGenerateKeyIsPrivate(t *testing.T) {
	k := sharedTestKey(t)
	assert.True(t, k.HasPrivate())
	assert.Equal(t, 1024, k.BitSize())
}

func TestGenerateKeyUnsupportedSize(t *testing.T) {
	_, err := GenerateKey(1536)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrGenerationFailed))
	// sentinels must stay distinguishable
	assert.False(t, errors.Is(err, types.ErrSignatureFailed))
}

func TestAttributesRoundTrip(t *testing.T) {
	k := sharedTestKey(t)

	material, err := k.Attributes()
	require.NoError(t, err)
	require.NotNil(t, material.X)

	imported, err := CreateKey(material, true)
	require.NoError(t, err)
	assert.True(t, k.Equals(imported))

	// field-for-field byte equality after a second extraction
	again, err := imported.Attributes()
	require.NoError(t, err)
	assert.Equal(t, material, again)
}

func TestPublicAttributesOmitPrivate(t *testing.T) {
	k := sharedTestKey(t)

	material, err := k.PublicAttributes()
	require.NoError(t, err)
	assert.Nil(t, material.X)

	pub, err := CreateKey(material, false)
	require.NoError(t, err)
	assert.False(t, pub.HasPrivate())

	pubMaterial, err := pub.PublicAttributes()
	require.NoError(t, err)
	assert.Equal(t, material, pubMaterial)
}

func TestAttributesRequirePrivate(t *testing.T) {
	k := sharedTestKey(t)
	material, err := k.PublicAttributes()
	require.NoError(t, err)

	pub, err := CreateKey(material, false)
	require.NoError(t, err)

	_, err = pub.Attributes()
	assert.True(t, errors.Is(err, types.ErrMissingPrivateKey))
}

func TestCreateKeyRejectsEmptyModulus(t *testing.T) {
	k := sharedTestKey(t)
	material, err := k.Attributes()
	require.NoError(t, err)

	material.P = []byte{}
	_, err = CreateKey(material, true)
	assert.True(t, errors.Is(err, types.ErrInvalidKeyMaterial))
	assert.False(t, errors.Is(err, types.ErrMissingPrivateKey))
}

func TestCreateKeyRejectsMissingExponent(t *testing.T) {
	k := sharedTestKey(t)
	material, err := k.PublicAttributes()
	require.NoError(t, err)

	_, err = CreateKey(material, true)
	assert.True(t, errors.Is(err, types.ErrMissingPrivateKey))
}

func TestSignVerify(t *testing.T) {
	k := sharedTestKey(t)
	digest := testDigest(t)

	sig, err := k.Sign(digest)
	require.NoError(t, err)

	ok, err := k.Verify(digest, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsTamperedDigest(t *testing.T) {
	k := sharedTestKey(t)
	digest := testDigest(t)

	sig, err := k.Sign(digest)
	require.NoError(t, err)

	digest[0] ^= 0x01
	ok, err := k.Verify(digest, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsWrongSignature(t *testing.T) {
	k := sharedTestKey(t)
	digest := testDigest(t)
	other := testDigest(t)

	// well-formed signature over a different digest: clean mismatch, no error
	sig, err := k.Sign(other)
	require.NoError(t, err)

	ok, err := k.Verify(digest, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedSignatureIsAnError(t *testing.T) {
	k := sharedTestKey(t)
	digest := testDigest(t)

	ok, err := k.Verify(digest, []byte("not a der signature"))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, types.ErrVerificationFailed))
}

func TestSignRequiresPrivate(t *testing.T) {
	k := sharedTestKey(t)
	material, err := k.PublicAttributes()
	require.NoError(t, err)

	pub, err := CreateKey(material, false)
	require.NoError(t, err)

	_, err = pub.Sign(testDigest(t))
	assert.True(t, errors.Is(err, types.ErrMissingPrivateKey))
}

func TestEquals(t *testing.T) {
	k := sharedTestKey(t)
	assert.True(t, k.Equals(k))

	material, err := k.PublicAttributes()
	require.NoError(t, err)
	pub, err := CreateKey(material, false)
	require.NoError(t, err)

	// public-only copy differs from the private original
	assert.False(t, k.Equals(pub))
	assert.False(t, pub.Equals(k))

	other, err := GenerateKey(1024)
	require.NoError(t, err)
	assert.False(t, k.Equals(other))
}

func TestSignerVerifierAdapters(t *testing.T) {
	k := sharedTestKey(t)

	signer, err := k.NewSigner()
	require.NoError(t, err)
	verifier, err := k.NewVerifier()
	require.NoError(t, err)

	data := []byte("message body to sign and verify")
	sig, err := signer.Sign(data)
	require.NoError(t, err)
	require.NoError(t, verifier.Verify(data, sig))

	err = verifier.Verify(append(data, 'x'), sig)
	assert.True(t, errors.Is(err, types.ErrInvalidSignature))
}

func TestSignerRequiresPrivate(t *testing.T) {
	k := sharedTestKey(t)
	material, err := k.PublicAttributes()
	require.NoError(t, err)
	pub, err := CreateKey(material, false)
	require.NoError(t, err)

	_, err = pub.NewSigner()
	assert.True(t, errors.Is(err, types.ErrMissingPrivateKey))
}
