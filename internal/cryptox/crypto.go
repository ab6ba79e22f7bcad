// Package cryptox implements password hashing for stored user credentials.
//
// Stored values have the form hex(key) + "." + salt, where salt is a random
// 16-byte value rendered as 32 hex characters and fed to scrypt as those
// characters (not the decoded bytes). Existing rows written by the previous
// Node.js server use the same layout, so they verify unchanged.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltSize     = 16
)

// HashPassword derives a key from password with a fresh random salt and
// returns the storable "hash.salt" string.
func HashPassword(password string) (string, error) {
	salt, err := common.MakeRandHexString(saltSize)
	if err != nil {
		return "", err
	}
	return hashWithSalt(password, salt)
}

func hashWithSalt(password, salt string) (string, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

// ComparePassword reports whether supplied matches the stored "hash.salt"
// value. Malformed stored values never match.
func ComparePassword(supplied, stored string) bool {
	hashed, salt, ok := strings.Cut(stored, ".")
	if !ok || hashed == "" || salt == "" {
		return false
	}

	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != scryptKeyLen {
		return false
	}

	got, err := scrypt.Key([]byte(supplied), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(want, got) == 1
}
