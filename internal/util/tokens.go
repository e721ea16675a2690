package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidTokenUser = errors.New("invalid user_id in token")
)

// TokenPair is a short-lived access token and the refresh token that renews it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IssueTokenPair signs a new access and refresh token for userID.
func IssueTokenPair(userID uint, secretKey string) (TokenPair, error) {
	access, err := signToken(userID, TokenTypeAccess, accessTokenTTL, secretKey)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(userID, TokenTypeRefresh, refreshTokenTTL, secretKey)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(userID uint, tokenType string, ttl time.Duration, secretKey string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
		"type":    tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return tokenString, nil
}

// ParseToken validates an HS256 token of the given type and returns the
// user ID it was issued for.
func ParseToken(tokenString, wantType, secretKey string) (uint, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return 0, ErrInvalidTokenType
	}

	// JSON numbers decode as float64.
	idFloat, ok := claims["user_id"].(float64)
	if !ok || idFloat <= 0 {
		return 0, ErrInvalidTokenUser
	}
	return uint(idFloat), nil
}
