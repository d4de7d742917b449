package crypto

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyChain_WrapUnwrapRoundTrip verifies a DEK survives wrapping and
// unwrapping under the same passphrase-derived KEK.
func TestKeyChain_WrapUnwrapRoundTrip(t *testing.T) {
	chain := NewKeyChain()

	dek, err := chain.GenerateDEK()
	require.NoError(t, err)
	require.Len(t, dek, 32)

	salt, err := chain.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 16)

	kek := chain.DeriveKEK("correct horse battery staple", salt)
	require.Len(t, kek, 32)

	wrapped, err := chain.WrapDEK(dek, kek)
	require.NoError(t, err)

	got, err := chain.UnwrapDEK(wrapped, kek)
	require.NoError(t, err)
	assert.Equal(t, dek, got)
}

// TestKeyChain_WrongPassphraseFails verifies that a KEK derived from the
// wrong passphrase cannot unwrap the DEK.
func TestKeyChain_WrongPassphraseFails(t *testing.T) {
	chain := NewKeyChain()

	dek, err := chain.GenerateDEK()
	require.NoError(t, err)
	salt, err := chain.GenerateSalt()
	require.NoError(t, err)

	wrapped, err := chain.WrapDEK(dek, chain.DeriveKEK("right", salt))
	require.NoError(t, err)

	_, err = chain.UnwrapDEK(wrapped, chain.DeriveKEK("wrong", salt))
	assert.Error(t, err)
}

// TestKeyChain_DerivationIsDeterministic verifies the same passphrase+salt
// always derives the same KEK, and a different salt derives a different one.
func TestKeyChain_DerivationIsDeterministic(t *testing.T) {
	chain := NewKeyChain()

	saltA, err := chain.GenerateSalt()
	require.NoError(t, err)
	saltB, err := chain.GenerateSalt()
	require.NoError(t, err)

	assert.Equal(t, chain.DeriveKEK("p", saltA), chain.DeriveKEK("p", saltA))
	assert.NotEqual(t, chain.DeriveKEK("p", saltA), chain.DeriveKEK("p", saltB))
}

// TestLoadOrCreateDEK_FirstRunAndReload verifies the first run creates and
// persists key material, the second run unwraps the same DEK, and a wrong
// passphrase fails.
func TestLoadOrCreateDEK_FirstRunAndReload(t *testing.T) {
	chain := NewKeyChain()
	store := NewFileKeyStore(filepath.Join(t.TempDir(), "keys.json"))

	dek, err := LoadOrCreateDEK(chain, store, "pass")
	require.NoError(t, err)
	require.Len(t, dek, 32)

	again, err := LoadOrCreateDEK(chain, store, "pass")
	require.NoError(t, err)
	assert.Equal(t, dek, again)

	_, err = LoadOrCreateDEK(chain, store, "other")
	assert.Error(t, err)
}

// TestFileKeyStore_LoadMissing verifies the first-run sentinel.
func TestFileKeyStore_LoadMissing(t *testing.T) {
	store := NewFileKeyStore(filepath.Join(t.TempDir(), "keys.json"))
	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrKeyMaterialNotFound)
}
