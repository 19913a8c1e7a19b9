package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100_000
	saltBytes        = 16

	minTokenLength = 20
	maxTokenLength = 255
)

// GenerateAPIKey returns a URL-safe random key with the given number of
// random bytes.
func GenerateAPIKey(length int) (string, error) {
	if length <= 0 {
		length = 32
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateSecret returns a hex-encoded random secret with the given
// number of random bytes.
func GenerateSecret(length int) (string, error) {
	if length <= 0 {
		length = 64
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a PBKDF2-SHA256 hash of the password. When salt
// is empty a fresh random salt is generated. Both the base64 hash and
// the salt are returned; the caller stores both.
func HashPassword(password, salt string) (hash, usedSalt string, err error) {
	if salt == "" {
		buf := make([]byte, saltBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(buf)
	}
	derived := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, sha256.Size, sha256.New)
	return base64.StdEncoding.EncodeToString(derived), salt, nil
}

// VerifyPassword reports whether the password matches the stored hash
// and salt. Comparison is constant-time.
func VerifyPassword(password, hash, salt string) bool {
	expected, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}

// Sign returns a base64 HMAC-SHA256 signature of data under secret.
func Sign(data []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature is a valid HMAC-SHA256
// signature of data under secret. Comparison is constant-time.
func VerifySignature(data []byte, signature, secret string) bool {
	expected := Sign(data, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// MaskSensitive redacts the middle of a credential for logging, keeping
// the first and last visibleChars characters. Values too short to keep
// anything visible are fully masked.
func MaskSensitive(value string, visibleChars int) string {
	if visibleChars <= 0 {
		visibleChars = 4
	}
	if len(value) <= visibleChars*2 {
		return strings.Repeat("*", len(value))
	}
	return value[:visibleChars] + strings.Repeat("*", len(value)-visibleChars*2) + value[len(value)-visibleChars:]
}

// SanitizeHeaderValue strips characters that would allow HTTP header
// injection and trims surrounding whitespace.
func SanitizeHeaderValue(value string) string {
	replacer := strings.NewReplacer("\r", "", "\n", "", "\x00", "")
	return strings.TrimSpace(replacer.Replace(value))
}

// IsSecureURL reports whether the URL uses HTTPS.
func IsSecureURL(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "https://")
}

// IsValidTokenFormat reports whether the value looks like an admin API
// token: bounded length and restricted to the token alphabet.
func IsValidTokenFormat(token string) bool {
	if len(token) < minTokenLength || len(token) > maxTokenLength {
		return false
	}
	for _, c := range token {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
