package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrKindMismatch is returned when a structurally valid token belongs to the
// other signing namespace.
var ErrKindMismatch = fmt.Errorf("token kind mismatch")

// Mint issues a signed JWT for the payload. The payload kind selects the
// signing secret and TTL.
func Mint(cfg config.JWTConfig, now time.Time, payload TokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if !payload.Kind.IsValid() {
		return "", fmt.Errorf("invalid token kind %q", payload.Kind)
	}
	if payload.SubjectID == uuid.Nil {
		return "", fmt.Errorf("subject id is required")
	}

	ttl := cfg.TTLFor(payload.Kind)
	if ttl <= 0 {
		return "", fmt.Errorf("jwt ttl must be positive")
	}

	claims := TokenClaims{
		Email: payload.Email,
		Role:  payload.Role,
		Kind:  payload.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.SubjectID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.SecretFor(payload.Kind)))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Parse validates the JWT against the expected kind's secret and returns typed
// claims. A token minted for the other kind fails with ErrKindMismatch even
// when both kinds share a secret.
func Parse(cfg config.JWTConfig, tokenString string, kind enums.TokenKind) (*TokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid token kind %q", kind)
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.SecretFor(kind)), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if claims.Kind != kind {
		return nil, ErrKindMismatch
	}

	return claims, nil
}
