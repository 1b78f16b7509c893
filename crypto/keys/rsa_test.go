package keys

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRSAProviderRoundTrip(t *testing.T) {
	c := qt.New(t)
	p := NewRSAProvider()

	pubPEM, privPEM, err := p.GenerateKeyPair(2048)
	c.Assert(err, qt.IsNil)

	pub, err := p.LoadPublicKey(pubPEM)
	c.Assert(err, qt.IsNil)
	priv, err := p.LoadPrivateKey(privPEM)
	c.Assert(err, qt.IsNil)

	plaintext := []byte(`{"number":1,"preference":["A","B"]}`)
	ciphertext, err := p.Encrypt(pub, plaintext)
	c.Assert(err, qt.IsNil)
	c.Assert(ciphertext, qt.Not(qt.DeepEquals), plaintext)

	decrypted, err := p.Decrypt(priv, ciphertext)
	c.Assert(err, qt.IsNil)
	c.Assert(decrypted, qt.DeepEquals, plaintext)

	signature, err := p.Sign(priv, ciphertext)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Verify(pub, ciphertext, signature), qt.IsNil)

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0xff
	c.Assert(p.Verify(pub, tampered, signature), qt.IsNotNil)
}

func TestRSAProviderRejectsOversizedPlaintext(t *testing.T) {
	c := qt.New(t)
	p := NewRSAProvider()

	pubPEM, _, err := p.GenerateKeyPair(2048)
	c.Assert(err, qt.IsNil)
	pub, err := p.LoadPublicKey(pubPEM)
	c.Assert(err, qt.IsNil)

	max, err := p.MaxPlaintextLen(pub)
	c.Assert(err, qt.IsNil)
	c.Assert(max, qt.Equals, 256-2*32-2)

	_, err = p.Encrypt(pub, make([]byte, max+1))
	c.Assert(err, qt.ErrorIs, ErrCrypto)

	_, err = p.Encrypt(pub, make([]byte, max))
	c.Assert(err, qt.IsNil)
}
