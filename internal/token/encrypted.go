package token

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// EncryptedStore seals the token with AES-256-GCM before handing it to the
// underlying store.
type EncryptedStore struct {
	inner Store
	aead  cipher.AEAD
}

// NewEncryptedStore takes a hex-encoded 32 byte key.
func NewEncryptedStore(inner Store, hexKey string) (*EncryptedStore, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes (64 hex chars)")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &EncryptedStore{inner: inner, aead: gcm}, nil
}

func (s *EncryptedStore) Get(ctx context.Context) (string, error) {
	sealed, err := s.inner.Get(ctx)
	if err != nil || sealed == "" {
		return "", err
	}
	return s.open(sealed)
}

func (s *EncryptedStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	sealed, err := s.seal(token)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, sealed, ttl)
}

func (s *EncryptedStore) Remove(ctx context.Context) error {
	return s.inner.Remove(ctx)
}

func (s *EncryptedStore) seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *EncryptedStore) open(encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}

	return string(plaintext), nil
}
