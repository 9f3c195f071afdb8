package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Encryptor encrypts and decrypts user emails at rest using AES-GCM.
// The AES key is derived once from a configured secret and salt.
type Encryptor struct {
	key []byte
}

// DeriveKey stretches the configured secret into a 256-bit AES key.
func DeriveKey(secret, salt string) []byte {
	return argon2.IDKey([]byte(secret), []byte(salt), 1, 64*1024, 4, 32)
}

func NewEncryptor(secret, salt string) *Encryptor {
	return &Encryptor{key: DeriveKey(secret, salt)}
}

// Encrypt seals the plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext).
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	aesgcm, err := e.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	aesgcm, err := e.aead()
	if err != nil {
		return "", err
	}
	if len(raw) < aesgcm.NonceSize() {
		return "", ErrMalformedCiphertext
	}
	nonce, sealed := raw[:aesgcm.NonceSize()], raw[aesgcm.NonceSize():]
	plain, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (e *Encryptor) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EmailHash returns the gravatar-style content hash of an email address:
// md5 hex of the lowercased, trimmed plaintext. It doubles as the fallback
// avatar key and as the deterministic lookup key for encrypted emails.
func EmailHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
