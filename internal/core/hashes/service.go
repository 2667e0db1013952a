package hashes

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"threatScoringBackend/internal/core/domain"
)

// Service provides the one-way hash primitives for the closed algorithm set.
// Fast digest algorithms compare recomputed hex strings; bcrypt goes through
// the library's constant-time check since the stored value embeds its salt.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Identify infers the algorithm tag from the shape of a stored hash. Returns
// the empty tag when the shape matches nothing in the supported set.
func (s *Service) Identify(hash string) domain.HashType {
	if strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$") {
		return domain.HashBCRYPT
	}
	if !isHex(hash) {
		return ""
	}
	switch len(hash) {
	case 32:
		return domain.HashMD5
	case 40:
		return domain.HashSHA1
	case 64:
		return domain.HashSHA256
	case 128:
		return domain.HashSHA512
	}
	return ""
}

func (s *Service) Verify(password, hash string, hashType domain.HashType) (bool, error) {
	switch hashType {
	case domain.HashMD5, domain.HashSHA1, domain.HashSHA256, domain.HashSHA512:
		digest, err := digestHex(password, hashType)
		if err != nil {
			return false, err
		}
		return strings.EqualFold(digest, hash), nil
	case domain.HashBCRYPT:
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, domain.ErrInvalidHash
	default:
		return false, domain.ErrUnsupportedAlgorithm
	}
}

func (s *Service) Generate(password string, hashType domain.HashType) (string, error) {
	switch hashType {
	case domain.HashMD5, domain.HashSHA1, domain.HashSHA256, domain.HashSHA512:
		return digestHex(password, hashType)
	case domain.HashBCRYPT:
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	default:
		return "", domain.ErrUnsupportedAlgorithm
	}
}

func digestHex(password string, hashType domain.HashType) (string, error) {
	switch hashType {
	case domain.HashMD5:
		sum := md5.Sum([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	case domain.HashSHA1:
		sum := sha1.Sum([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	case domain.HashSHA256:
		sum := sha256.Sum256([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	case domain.HashSHA512:
		sum := sha512.Sum512([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", domain.ErrUnsupportedAlgorithm
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
