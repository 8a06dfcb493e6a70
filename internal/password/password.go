// Package password hashes and verifies hotel partner passwords.
//
// New hashes are bcrypt. Rows created before the switch hold an unsalted
// SHA-256 hex digest; Verify still accepts those and flags them for rehash.
package password

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/soycar/hotel-portal/internal/util"
)

const (
	// MinLength is enforced on registration and password change.
	MinLength = 6

	DefaultCost = 12

	digestLength = sha256.Size * 2
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// Digest returns the lowercase hex SHA-256 of the UTF-8 password.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLegacyDigest reports whether stored looks like a Digest output.
func IsLegacyDigest(stored string) bool {
	if len(stored) != digestLength {
		return false
	}
	for _, c := range stored {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

type Result struct {
	Match       bool
	NeedsRehash bool
}

// Verify compares password against a stored bcrypt hash or legacy digest.
// A mismatch is reported through Result, not as an error.
func (h *Hasher) Verify(password, stored string) (Result, error) {
	if stored == "" {
		return Result{}, nil
	}

	if IsLegacyDigest(stored) {
		if !util.ConstantTimeEqual(Digest(password), stored) {
			return Result{}, nil
		}
		return Result{Match: true, NeedsRehash: true}, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("verify password: %w", err)
	}

	cost, err := bcrypt.Cost([]byte(stored))
	if err != nil {
		return Result{Match: true}, nil
	}
	return Result{Match: true, NeedsRehash: cost < h.cost}, nil
}
