package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Audience is the aud claim every lookup API token carries.
const Audience = "wordlookup-api"

// clockSkew tolerated on exp, for extension clocks that drift.
const clockSkew = 30 * time.Second

// errInvalidToken wraps every validation failure.
var errInvalidToken = errors.New("invalid access token")

// JWTManager issues and validates the HS256 bearer tokens handed to extension
// installs. The subject is the client ID, the client claim a free-form label
// for logs, and each token gets its own jti.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	parser    *jwt.Parser
}

// NewJWTManager creates a JWTManager. Config validation requires secret to be
// at least 32 characters.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(Audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Client string `json:"client,omitempty"`
}

// GenerateAccessToken signs a token for clientID with the configured TTL.
func (m *JWTManager) GenerateAccessToken(clientID uuid.UUID, label string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   clientID.String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Client: label,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken returns the client ID and label of a valid token.
// Failures wrap errInvalidToken.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", fmt.Errorf("%w: empty", errInvalidToken)
	}

	var claims accessClaims
	if _, err := m.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	clientID, err := uuid.Parse(claims.Subject)
	if err != nil || clientID == uuid.Nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject %q is not a client ID", errInvalidToken, claims.Subject)
	}
	return clientID, claims.Client, nil
}
