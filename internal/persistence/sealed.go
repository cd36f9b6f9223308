package persistence

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/accountkeeper/internal/account"
	"golang.org/x/crypto/argon2"
)

// Envelope layout: magic | salt | nonce | AES-GCM ciphertext.
// The storage key is bound as additional data.
var sealMagic = []byte("AKS1")

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// Sealed encrypts documents with a key derived from a passphrase before
// handing them to the wrapped persister. Each save uses a fresh salt and nonce.
type Sealed struct {
	inner      account.Persister
	passphrase []byte
}

func NewSealed(inner account.Persister, passphrase string) *Sealed {
	return &Sealed{inner: inner, passphrase: []byte(passphrase)}
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *Sealed) seal(key string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	aead, err := newGCM(deriveKey(s.passphrase, salt))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealMagic)+saltSize+nonceSize+len(plaintext)+aead.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, []byte(key)), nil
}

func (s *Sealed) open(key string, envelope []byte) ([]byte, error) {
	header := len(sealMagic) + saltSize + nonceSize
	if len(envelope) < header || !bytes.Equal(envelope[:len(sealMagic)], sealMagic) {
		return nil, fmt.Errorf("%w: not a sealed document", ErrSealed)
	}

	salt := envelope[len(sealMagic) : len(sealMagic)+saltSize]
	nonce := envelope[len(sealMagic)+saltSize : header]

	aead, err := newGCM(deriveKey(s.passphrase, salt))
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, envelope[header:], []byte(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSealed, err)
	}
	return plaintext, nil
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	envelope, err := s.inner.Get(ctx, key)
	if err != nil || envelope == nil {
		return nil, err
	}
	return s.open(key, envelope)
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	envelope, err := s.seal(key, value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, envelope)
}
