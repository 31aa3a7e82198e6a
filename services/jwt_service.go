package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ConsoleJWTClaims represents the JWT claims for console tokens
type ConsoleJWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and verification
type JWTService struct {
	secretKey string
	expiry    time.Duration
}

var jwtService *JWTService

// InitJWTService initializes the JWT service with a secret key and token lifetime
func InitJWTService(secretKey string, expiry time.Duration) error {
	if secretKey == "" {
		return errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	jwtService = &JWTService{
		secretKey: secretKey,
		expiry:    expiry,
	}
	return nil
}

// GetJWTService returns the initialized JWT service
func GetJWTService() *JWTService {
	if jwtService == nil {
		secretKey := os.Getenv("JWT_SECRET")
		if secretKey == "" {
			secretKey = "dev-secret-key-change-in-production"
		}
		jwtService = &JWTService{secretKey: secretKey, expiry: 24 * time.Hour}
	}
	return jwtService
}

// Expiry is how long issued tokens stay valid
func (j *JWTService) Expiry() time.Duration {
	return j.expiry
}

// GenerateConsoleJWT creates a signed token for a console user
func (j *JWTService) GenerateConsoleJWT(userID, username string) (string, time.Time, error) {
	if userID == "" || username == "" {
		return "", time.Time{}, errors.New("userID and username cannot be empty")
	}

	now := time.Now()
	expiresAt := now.Add(j.expiry)

	claims := ConsoleJWTClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "asadel-console",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// VerifyConsoleJWT verifies and parses a JWT token
// Returns claims if valid, error if invalid or expired
func (j *JWTService) VerifyConsoleJWT(tokenString string) (*ConsoleJWTClaims, error) {
	claims := &ConsoleJWTClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.UserID == "" || claims.Username == "" {
		return nil, errors.New("token missing required claims")
	}

	return claims, nil
}

// GenerateConsoleJWT generates a token using the global JWT service
func GenerateConsoleJWT(userID, username string) (string, time.Time, error) {
	return GetJWTService().GenerateConsoleJWT(userID, username)
}

// VerifyConsoleJWT verifies a token using the global JWT service
func VerifyConsoleJWT(tokenString string) (*ConsoleJWTClaims, error) {
	return GetJWTService().VerifyConsoleJWT(tokenString)
}
