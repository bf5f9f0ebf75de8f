package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/pkg/enums"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	SubjectID uuid.UUID
	Email     string
	Role      string
	Kind      enums.TokenKind
}

// TokenClaims is the typed JWT issued to customers and admins. The kind claim
// pins a token to its namespace so an admin token can never authorize a
// customer route and vice versa.
type TokenClaims struct {
	Email string          `json:"email"`
	Role  string          `json:"rol"`
	Kind  enums.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// SubjectID parses the registered subject back into a UUID.
func (c *TokenClaims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
