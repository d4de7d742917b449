// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/daybreak-app/daybreak-store/internal/logger"
)

// Placeholder is substituted for a field value that cannot be decrypted
// (corruption, key rotation without re-encryption, cross-install key loss).
// The failure is logged, never fatal, and never blocks unrelated reads.
const Placeholder = "[unable to decrypt]"

// ErrInvalidDEK is returned when the provided data-encryption key has the
// wrong length for AES-256.
var ErrInvalidDEK = errors.New("data encryption key must be 32 bytes")

// fieldCodec is the private AES-256-GCM implementation of [FieldCodec].
// Ciphertext layout: base64(nonce ‖ ciphertext), nonce first so the
// decryption side can split it out.
type fieldCodec struct {
	aead   cipher.AEAD
	logger *logger.Logger
}

// NewFieldCodec constructs a [FieldCodec] from a 32-byte DEK. The codec is
// stateless and safe for concurrent use.
func NewFieldCodec(dek []byte, log *logger.Logger) (FieldCodec, error) {
	if len(dek) != 32 {
		return nil, ErrInvalidDEK
	}

	block, err := aes.NewCipher(dek)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &fieldCodec{aead: gcm, logger: log}, nil
}

// Encrypt implements [FieldCodec]. It encrypts plaintext with AES-256-GCM
// under a random 12-byte nonce and returns base64(nonce ‖ ciphertext).
func (c *fieldCodec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// Decrypt implements [FieldCodec]. The empty field is the absent value and
// decrypts to the empty string without touching the cipher.
func (c *fieldCodec) Decrypt(field string) (string, error) {
	if field == "" {
		return "", nil
	}

	blob, err := base64.StdEncoding.DecodeString(field)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// An auth-tag mismatch here almost always means the field was written
	// under a different DEK or the row was corrupted on disk.
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt field: %w", err)
	}

	return string(plaintext), nil
}

// DecryptOrPlaceholder implements [FieldCodec].
func (c *fieldCodec) DecryptOrPlaceholder(field string) string {
	plaintext, err := c.Decrypt(field)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("func", "fieldCodec.DecryptOrPlaceholder").
			Msg("field could not be decrypted, substituting placeholder")
		return Placeholder
	}
	return plaintext
}

// DecryptBatch decrypts fields concurrently, substituting [Placeholder] for
// any field that fails. Decryptions are independent, so no ordering is
// required between them; the result slice preserves input positions. The
// fan-out is bounded so a large export cannot saturate the caller's thread.
func DecryptBatch(codec FieldCodec, fields []string) []string {
	out := make([]string, len(fields))
	if len(fields) == 0 {
		return out
	}

	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	if workers > len(fields) {
		workers = len(fields)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = codec.DecryptOrPlaceholder(fields[i])
			}
		}()
	}

	for i := range fields {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
