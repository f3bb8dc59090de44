package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const cipherKeyLength = 32 // AES-256

// DeriveCipherKey stretches the configured gateway secret into an AES-256 key.
func DeriveCipherKey(secret, salt string) []byte {
	return pbkdf2.Key([]byte(secret), []byte(salt), 4096, cipherKeyLength, sha256.New)
}

// EncryptPassword encrypts a plaintext device password for at-rest storage
// using AES-256-CBC. A fresh random IV is prepended to the ciphertext and the
// whole blob is base64-encoded.
func EncryptPassword(plaintext string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := padPKCS7([]byte(plaintext), block.BlockSize())
	buf := make([]byte, block.BlockSize()+len(padded))
	iv := buf[:block.BlockSize()]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[block.BlockSize():], padded)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecryptPassword reverses EncryptPassword, reading the IV back from the
// prefix of the decoded blob.
func DecryptPassword(encoded string, key []byte) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode password blob: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	if len(buf) < 2*block.BlockSize() || len(buf)%block.BlockSize() != 0 {
		return "", fmt.Errorf("password blob has invalid length %d", len(buf))
	}

	iv, ciphertext := buf[:block.BlockSize()], buf[block.BlockSize():]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpadPKCS7(plaintext, block.BlockSize())
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func padPKCS7(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
