package types

import "errors"

// Sentinels are plain stdlib errors so that errors.Is can discriminate
// failure categories; call sites wrap them with oops.Errorf("...: %w", err)
// to attach context.
var (
	// ErrInvalidKeyMaterial means a supplied numeric field could not be
	// decoded or decoded to a non-positive value.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrMissingPrivateKey means an operation requiring the private
	// exponent was invoked on a public-only key or record.
	ErrMissingPrivateKey = errors.New("missing private key")
	// ErrIncompleteKey means one or more required public fields are absent.
	ErrIncompleteKey = errors.New("incomplete key")
	// ErrGenerationFailed means parameter or key pair generation failed.
	ErrGenerationFailed = errors.New("key generation failed")
	// ErrSignatureFailed means the signing primitive reported failure.
	ErrSignatureFailed = errors.New("signature failed")
	// ErrVerificationFailed means verification could not be carried out,
	// as opposed to a clean "signature does not match" result.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrInvalidSignature means a well-formed signature did not match.
	ErrInvalidSignature = errors.New("invalid signature")
)
