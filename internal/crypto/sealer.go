// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrEmptySecret is returned by NewSealer for an empty secret.
	ErrEmptySecret = errors.New("sealing secret is empty")

	// ErrOpenFailed is returned when a blob cannot be decrypted.
	ErrOpenFailed = errors.New("failed to open sealed value")
)

// sessionKeyInfo domain-separates the derived key from any other use of the
// same secret.
const sessionKeyInfo = "go-writeups/session-tokens/v1"

const keyLen = 32 // AES-256

// sealer is the private implementation of [Sealer].
type sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit AES-GCM key from secret with HKDF-SHA256 and
// returns a [Sealer] using it.
func NewSealer(secret string) (Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, keyLen)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &sealer{aead: gcm}, nil
}

// Seal implements [Sealer]. A random nonce is prepended to the ciphertext so
// Open can split it out: blob = nonce ‖ ciphertext.
func (s *sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := s.aead.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer].
func (s *sealer) Open(sealed string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrOpenFailed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrOpenFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// An error here almost always means the secret changed since sealing.
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	return string(plaintext), nil
}
