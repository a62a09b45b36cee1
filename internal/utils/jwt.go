package utils

import (
	"fmt"
	"time"

	"vetclinic-admin-server/internal/config"
	"vetclinic-admin-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim so a refresh token cannot be used as
// an access token and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the JWT claims.
type Claims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateTokens generates both access and refresh tokens for a staff user.
func GenerateTokens(user *models.User, cfg *config.Config) (accessToken string, refreshToken string, err error) {
	now := time.Now()

	accessToken, err = signToken(user, TokenTypeAccess,
		now.Add(time.Duration(cfg.JWTExpirationMinutes)*time.Minute), now, cfg.JWTSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err = signToken(user, TokenTypeRefresh,
		now.Add(time.Duration(cfg.JWTRefreshExpirationHours)*time.Hour), now, cfg.JWTRefreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func signToken(user *models.User, tokenType string, expiresAt, issuedAt time.Time, secret string) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   user.ID,
			ID:        uuid.NewString(), // keeps two tokens issued in the same second distinct
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken validates an access token.
func ValidateToken(tokenString string, secretKey string) (*Claims, error) {
	return validate(tokenString, secretKey, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token.
func ValidateRefreshToken(tokenString string, secretKey string) (*Claims, error) {
	return validate(tokenString, secretKey, TokenTypeRefresh)
}

func validate(tokenString, secretKey, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token, got %q", tokenType, claims.TokenType)
	}

	return claims, nil
}
