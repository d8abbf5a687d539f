// Package crypto seals private text at rest and derives blind indexes so
// encrypted columns can still be looked up by equality.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const KeySize = 32

var ErrCiphertext = errors.New("crypto: malformed ciphertext")

// Sealer encrypts with AES-256-GCM and indexes with HMAC-SHA256 under a
// separate key.
type Sealer struct {
	aead     cipher.AEAD
	indexKey []byte
}

func NewSealer(encryptionKey, blindIndexKey []byte) (*Sealer, error) {
	if len(encryptionKey) != KeySize {
		return nil, fmt.Errorf("crypto: encryption key must be %d bytes, got %d", KeySize, len(encryptionKey))
	}
	if len(blindIndexKey) != KeySize {
		return nil, fmt.Errorf("crypto: blind index key must be %d bytes, got %d", KeySize, len(blindIndexKey))
	}
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead, indexKey: append([]byte(nil), blindIndexKey...)}, nil
}

// DecodeKey parses a base64 key as stored in the environment.
func DecodeKey(name, encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: not valid base64: %w", name, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%s: want %d bytes, got %d", name, KeySize, len(key))
	}
	return key, nil
}

// Seal returns base64(nonce || ciphertext). The empty string seals to itself.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertext, err)
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", ErrCiphertext
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertext, err)
	}
	return string(plain), nil
}

// BlindIndex is deterministic for a given key and input.
func (s *Sealer) BlindIndex(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	mac := hmac.New(sha256.New, s.indexKey)
	mac.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
