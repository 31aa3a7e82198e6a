package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/Asadel-Surveillance/asadel-console/validation"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles console credential operations
type AuthService struct {
	cost int
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{cost: bcrypt.DefaultCost}
}

// ════════════════════════════════════════════════════════════
// Password Management
// ════════════════════════════════════════════════════════════

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash
func (s *AuthService) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword returns the first password policy rule that fails
func (s *AuthService) ValidatePassword(password string) error {
	return validation.ValidatePassword(password)
}

// ════════════════════════════════════════════════════════════
// Token Helpers
// ════════════════════════════════════════════════════════════

// GenerateRandomToken returns a 64 character hex string (32 bytes)
func (s *AuthService) GenerateRandomToken() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}

// HashToken hashes a token using SHA256 for storage in database
func (s *AuthService) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ════════════════════════════════════════════════════════════
// Global Instance
// ════════════════════════════════════════════════════════════

var authService *AuthService

// GetAuthService returns the global auth service instance
func GetAuthService() *AuthService {
	if authService == nil {
		authService = NewAuthService()
	}
	return authService
}

// HashPassword hashes a password using the global service
func HashPassword(password string) (string, error) {
	return GetAuthService().HashPassword(password)
}

// VerifyPassword verifies a password using the global service
func VerifyPassword(hash, password string) bool {
	return GetAuthService().VerifyPassword(hash, password)
}

// HashToken hashes a token using the global service
func HashToken(token string) string {
	return GetAuthService().HashToken(token)
}
