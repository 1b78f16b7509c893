// Package keys defines the KeyProvider contract the workflow uses for
// ballot encryption, decryption and signing. The spec treats the concrete
// RSA primitives as an external cryptography provider's concern; this
// package carries that contract plus one default stdlib-backed
// implementation so the workflow is runnable end to end.
package keys

import "errors"

// ErrCrypto wraps any failure surfaced by a Provider implementation.
var ErrCrypto = errors.New("keys: cryptographic operation failed")

// PublicKey and PrivateKey are opaque handles returned by LoadPublicKey and
// LoadPrivateKey. Implementations may assert their own concrete type.
type PublicKey any
type PrivateKey any

// Provider generates, loads and exercises RSA keypairs over PEM-encoded
// material. Implementations must be safe for concurrent use.
type Provider interface {
	// GenerateKeyPair creates a new RSA keypair of the given modulus size,
	// PEM-encoded.
	GenerateKeyPair(bits int) (publicPEM, privatePEM []byte, err error)
	// LoadPublicKey parses a PEM-encoded RSA public key.
	LoadPublicKey(pemBytes []byte) (PublicKey, error)
	// LoadPrivateKey parses a PEM-encoded RSA private key.
	LoadPrivateKey(pemBytes []byte) (PrivateKey, error)
	// Encrypt encrypts plaintext against pub.
	Encrypt(pub PublicKey, plaintext []byte) ([]byte, error)
	// Decrypt decrypts ciphertext with priv.
	Decrypt(priv PrivateKey, ciphertext []byte) ([]byte, error)
	// Sign produces a detached signature over message using priv.
	Sign(priv PrivateKey, message []byte) ([]byte, error)
	// Verify checks a detached signature over message against pub.
	Verify(pub PublicKey, message, signature []byte) error
	// MaxPlaintextLen returns the largest plaintext, in bytes, Encrypt can
	// take against pub. Callers with variable-size payloads (e.g. ballot
	// metadata) should check a message against this before calling Encrypt
	// rather than discover the ceiling from a failed encryption.
	MaxPlaintextLen(pub PublicKey) (int, error)
}
