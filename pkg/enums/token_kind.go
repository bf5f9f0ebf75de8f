package enums

import "fmt"

// TokenKind names the signing namespace a JWT belongs to. Customer and admin
// tokens are verified against independent secrets and TTLs.
type TokenKind string

const (
	TokenKindCustomer TokenKind = "customer"
	TokenKindAdmin    TokenKind = "admin"
)

var validTokenKinds = []TokenKind{
	TokenKindCustomer,
	TokenKindAdmin,
}

// IsValid reports whether the value matches a known token kind.
func (k TokenKind) IsValid() bool {
	for _, candidate := range validTokenKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func (k TokenKind) String() string {
	return string(k)
}

// ParseTokenKind converts the raw string to TokenKind.
func ParseTokenKind(value string) (TokenKind, error) {
	for _, candidate := range validTokenKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid token kind %q", value)
}
