// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrKeyMaterialNotFound is returned by [KeyStore.Load] when no key material
// has been persisted yet (first run).
var ErrKeyMaterialNotFound = errors.New("key material not found")

// fileKeyStore persists the salt and wrapped DEK as a small JSON file,
// typically next to the database. The file never contains the plaintext DEK.
type fileKeyStore struct {
	path string
}

type keyFilePayload struct {
	Salt       string `json:"salt"`
	WrappedDEK string `json:"wrapped_dek"`
}

// NewFileKeyStore constructs a [KeyStore] backed by the file at path.
func NewFileKeyStore(path string) KeyStore {
	return &fileKeyStore{path: path}
}

// Load implements [KeyStore].
func (s *fileKeyStore) Load() ([]byte, []byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrKeyMaterialNotFound
		}
		return nil, nil, fmt.Errorf("read key file: %w", err)
	}

	var payload keyFilePayload
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode key file: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(payload.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(payload.WrappedDEK)
	if err != nil {
		return nil, nil, fmt.Errorf("decode wrapped dek: %w", err)
	}

	return salt, wrapped, nil
}

// Save implements [KeyStore]. The file is written with 0600 permissions.
func (s *fileKeyStore) Save(salt, wrappedDEK []byte) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create key file dir: %w", err)
		}
	}

	payload, err := json.Marshal(keyFilePayload{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		WrappedDEK: base64.StdEncoding.EncodeToString(wrappedDEK),
	})
	if err != nil {
		return fmt.Errorf("encode key file: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}

	return nil
}

// LoadOrCreateDEK returns the plaintext DEK for the given passphrase. On
// first run it generates a DEK and salt, wraps the DEK under the derived
// KEK, and persists both through the key store. On later runs it unwraps
// the stored DEK; a wrong passphrase surfaces as an unwrap error.
func LoadOrCreateDEK(chain KeyChain, store KeyStore, passphrase string) ([]byte, error) {
	salt, wrapped, err := store.Load()
	switch {
	case err == nil:
		kek := chain.DeriveKEK(passphrase, salt)
		dek, unwrapErr := chain.UnwrapDEK(wrapped, kek)
		if unwrapErr != nil {
			return nil, fmt.Errorf("unwrap stored key: %w", unwrapErr)
		}
		return dek, nil

	case errors.Is(err, ErrKeyMaterialNotFound):
		dek, genErr := chain.GenerateDEK()
		if genErr != nil {
			return nil, fmt.Errorf("generate dek: %w", genErr)
		}
		salt, genErr = chain.GenerateSalt()
		if genErr != nil {
			return nil, fmt.Errorf("generate salt: %w", genErr)
		}

		kek := chain.DeriveKEK(passphrase, salt)
		wrapped, genErr = chain.WrapDEK(dek, kek)
		if genErr != nil {
			return nil, fmt.Errorf("wrap dek: %w", genErr)
		}

		if saveErr := store.Save(salt, wrapped); saveErr != nil {
			return nil, fmt.Errorf("persist key material: %w", saveErr)
		}
		return dek, nil

	default:
		return nil, err
	}
}
