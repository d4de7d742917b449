// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package crypto

// FieldCodec encrypts and decrypts individual sensitive field values.
// Implementations are stateless given a key; ciphertexts are opaque strings
// that consumers only pass through Encrypt/Decrypt.
type FieldCodec interface {
	// Encrypt encrypts plaintext and returns the opaque field value.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Decrypt(Encrypt(x)) == x for all x.
	// An empty field decrypts to the empty string (absent value).
	Decrypt(field string) (string, error)

	// DecryptOrPlaceholder decrypts field, substituting Placeholder on any
	// failure. It never returns an error: batch read paths use it so one
	// corrupt field cannot abort processing of the remaining records.
	DecryptOrPlaceholder(field string) string
}

// KeyChain holds the key-derivation and key-wrapping primitives for the
// data-encryption key (DEK). The DEK encrypts field values; the
// key-encryption key (KEK) derived from the master passphrase wraps the DEK
// at rest.
type KeyChain interface {
	// GenerateDEK returns a fresh random 32-byte data-encryption key.
	GenerateDEK() ([]byte, error)

	// GenerateSalt returns a fresh random 16-byte Argon2 salt.
	GenerateSalt() ([]byte, error)

	// DeriveKEK derives a 256-bit key-encryption key from the master
	// passphrase and salt using Argon2id. The result exists only in memory.
	DeriveKEK(passphrase string, salt []byte) []byte

	// WrapDEK encrypts dek with kek using AES-256-GCM. The returned blob is
	// nonce ‖ ciphertext.
	WrapDEK(dek, kek []byte) ([]byte, error)

	// UnwrapDEK reverses WrapDEK. Returns an error if the blob is too
	// short, the KEK is wrong, or the blob is corrupted.
	UnwrapDEK(wrapped, kek []byte) ([]byte, error)
}

// KeyStore abstracts where the wrapped DEK and its salt live. The production
// implementation is a file next to the database; a platform-secure key store
// can satisfy the same interface.
type KeyStore interface {
	// Load returns the persisted salt and wrapped DEK.
	// Returns ErrKeyMaterialNotFound when nothing has been persisted yet.
	Load() (salt, wrappedDEK []byte, err error)

	// Save persists the salt and wrapped DEK.
	Save(salt, wrappedDEK []byte) error
}
