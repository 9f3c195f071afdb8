package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	e := NewEncryptor("test-secret", "test-salt")

	ct, err := e.Encrypt("ada@lovelace.dev")
	require.NoError(t, err)
	require.NotEqual(t, "ada@lovelace.dev", ct)

	pt, err := e.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "ada@lovelace.dev", pt)
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	t.Parallel()

	e := NewEncryptor("test-secret", "test-salt")

	a, err := e.Encrypt("same@input.io")
	require.NoError(t, err)
	b, err := e.Encrypt("same@input.io")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	ct, err := NewEncryptor("secret-a", "salt").Encrypt("x@y.z")
	require.NoError(t, err)

	_, err = NewEncryptor("secret-b", "salt").Decrypt(ct)
	assert.Error(t, err)
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()

	e := NewEncryptor("s", "s")

	_, err := e.Decrypt("not base64 !!")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)

	_, err = e.Decrypt("aaaa")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestEmailHash(t *testing.T) {
	t.Parallel()

	// Known md5 of the gravatar documentation address.
	assert.Equal(t, "0bc83cb571cd1c50ba6f3e8a78ef1346", EmailHash("MyEmailAddress@example.com "))
	assert.Equal(t, EmailHash("a@b.c"), EmailHash("  A@B.C  "))
}
