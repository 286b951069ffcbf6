// Package crypt is a small symmetric-encryption helper: AES-256 in CBC
// mode with PKCS#7 padding, configured from a hex-encoded key and IV,
// producing base64 ciphertext.
package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCiphertext is returned when decryption input is not
	// valid base64, not block-aligned, or carries broken padding.
	ErrInvalidCiphertext = errors.New("crypt: invalid ciphertext")
)

// Cipher encrypts and decrypts with a fixed key and IV. Reusing one IV
// across messages is the caller's trade-off; the helper mirrors a
// configuration-driven setup where both come from deployment config.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

// New builds a Cipher from a hex-encoded 256-bit key and a hex-encoded
// IV of one AES block.
func New(hexKey, hexIV string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("crypt: decode key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("crypt: key must be 32 bytes, got %d", len(key))
	}
	iv, err := hex.DecodeString(hexIV)
	if err != nil {
		return nil, fmt.Errorf("crypt: decode iv: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("crypt: iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypt: init cipher: %w", err)
	}
	return &Cipher{block: block, iv: iv}, nil
}

// Encrypt returns the base64-encoded CBC ciphertext of plaintext.
func (c *Cipher) Encrypt(plaintext []byte) string {
	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt. It fails with ErrInvalidCiphertext on any
// malformed input rather than returning garbage.
func (c *Cipher) Decrypt(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d not block-aligned", ErrInvalidCiphertext, len(raw))
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)
	return unpad(out, aes.BlockSize)
}

// pad appends PKCS#7 padding up to the next block boundary. Input that
// is already aligned gets one full block of padding.
func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips PKCS#7 padding, validating every padding byte.
func unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrInvalidCiphertext)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
		}
	}
	return b[:len(b)-n], nil
}
