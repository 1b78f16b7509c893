package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/rawblock/evote-ranking/log"
)

// RSAProvider is the default Provider implementation: RSA-OAEP (SHA-256)
// for encryption, RSA PKCS#1v15 over a SHA-256 digest for signing.
type RSAProvider struct{}

// NewRSAProvider constructs the default stdlib-backed Provider.
func NewRSAProvider() *RSAProvider { return &RSAProvider{} }

var _ Provider = (*RSAProvider)(nil)

func (RSAProvider) GenerateKeyPair(bits int) (publicPEM, privatePEM []byte, err error) {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: generate key: %v", ErrCrypto, err)
	}
	privBytes := x509.MarshalPKCS1PrivateKey(priv)
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: privBytes})

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: marshal public key: %v", ErrCrypto, err)
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	return publicPEM, privatePEM, nil
}

func (RSAProvider) LoadPublicKey(pemBytes []byte) (PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found in public key", ErrCrypto)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key: %v", ErrCrypto, err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", ErrCrypto)
	}
	return rsaPub, nil
}

func (RSAProvider) LoadPrivateKey(pemBytes []byte) (PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found in private key", ErrCrypto)
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", ErrCrypto, err)
	}
	return priv, nil
}

func (RSAProvider) Encrypt(pub PublicKey, plaintext []byte) ([]byte, error) {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: Encrypt: not an RSA public key", ErrCrypto)
	}
	if max := maxOAEPPlaintextLen(rsaPub); len(plaintext) > max {
		return nil, fmt.Errorf("%w: encrypt: plaintext is %d bytes, exceeds %d-byte OAEP ceiling for a %d-bit key",
			ErrCrypto, len(plaintext), max, rsaPub.Size()*8)
	}
	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, rsaPub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt: %v", ErrCrypto, err)
	}
	log.Debugw("encrypted ballot", "bytes", len(plaintext))
	return ciphertext, nil
}

// MaxPlaintextLen returns the largest message RSA-OAEP(SHA-256) can encrypt
// against pub: keySizeBytes - 2*hashLen - 2.
func (RSAProvider) MaxPlaintextLen(pub PublicKey) (int, error) {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return 0, fmt.Errorf("%w: MaxPlaintextLen: not an RSA public key", ErrCrypto)
	}
	return maxOAEPPlaintextLen(rsaPub), nil
}

func maxOAEPPlaintextLen(pub *rsa.PublicKey) int {
	return pub.Size() - 2*sha256.Size - 2
}

func (RSAProvider) Decrypt(priv PrivateKey, ciphertext []byte) ([]byte, error) {
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: Decrypt: not an RSA private key", ErrCrypto)
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, rsaPriv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt: %v", ErrCrypto, err)
	}
	return plaintext, nil
}

func (RSAProvider) Sign(priv PrivateKey, message []byte) ([]byte, error) {
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: Sign: not an RSA private key", ErrCrypto)
	}
	digest := sha256.Sum256(message)
	signature, err := rsa.SignPKCS1v15(rand.Reader, rsaPriv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: sign: %v", ErrCrypto, err)
	}
	return signature, nil
}

func (RSAProvider) Verify(pub PublicKey, message, signature []byte) error {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: Verify: not an RSA public key", ErrCrypto)
	}
	digest := sha256.Sum256(message)
	if err := rsa.VerifyPKCS1v15(rsaPub, crypto.SHA256, digest[:], signature); err != nil {
		return fmt.Errorf("%w: verify: %v", ErrCrypto, err)
	}
	return nil
}
