package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/utils/random"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret             string
	Issuer             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Issuer:             "teamhub",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

// JWTManager implements auth.TokenIssuer with HS256 access tokens.
type JWTManager struct {
	secret             []byte
	issuer             string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(cfg *JWTConfig) *JWTManager {
	if cfg == nil {
		cfg = DefaultJWTConfig()
	}
	return &JWTManager{
		secret:             []byte(cfg.Secret),
		issuer:             cfg.Issuer,
		accessTokenExpiry:  cfg.AccessTokenExpiry,
		refreshTokenExpiry: cfg.RefreshTokenExpiry,
		now:                time.Now,
	}
}

// GenerateAccessToken generates an access token.
func (m *JWTManager) GenerateAccessToken(userID collaboration.UserID, email collaboration.Email) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.accessTokenExpiry)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email.String(),
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}
	if m.issuer != "" {
		claims["iss"] = m.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// GenerateRefreshToken generates a random refresh token for userID.
func (m *JWTManager) GenerateRefreshToken(userID collaboration.UserID) (*auth.RefreshToken, error) {
	raw, err := random.Hex(32)
	if err != nil {
		return nil, err
	}
	return auth.NewRefreshToken(userID, raw, m.HashRefreshToken(raw), m.now().Add(m.refreshTokenExpiry)), nil
}

// ValidateAccessToken validates an access token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, auth.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, auth.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := collaboration.ParseUserID(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", auth.ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, auth.ErrInvalidToken
	}
	var issuedAt time.Time
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = iat.Time
	}

	return auth.NewClaims(userID, collaboration.Email(email), issuedAt, exp.Time), nil
}

// HashRefreshToken hashes a refresh token.
func (m *JWTManager) HashRefreshToken(token string) string {
	return random.SHA256Hex(token)
}

// AccessTokenExpiry returns access token expiry duration.
func (m *JWTManager) AccessTokenExpiry() time.Duration {
	return m.accessTokenExpiry
}

// Compile-time check
var _ auth.TokenIssuer = (*JWTManager)(nil)
