package auth

import (
	"github.com/fondita/fondita-backend/internal/accounts"
)

// LoginRequest carries credentials for both customer and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a storefront account.
type RegisterRequest struct {
	Name     string  `json:"nombre" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"telefono,omitempty"`
	Address  *string `json:"direccion,omitempty"`
}

// CreateAdminRequest creates a back-office account. Only super_admin may call it.
type CreateAdminRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol,omitempty"`
}

// LoginResponse is the canonical customer auth payload (login and registro).
type LoginResponse struct {
	Message string                `json:"mensaje"`
	Token   string                `json:"token"`
	User    accounts.SafeCustomer `json:"usuario"`
}

// AdminLoginResponse is the admin auth payload.
type AdminLoginResponse struct {
	Message string             `json:"mensaje"`
	Token   string             `json:"token"`
	Admin   accounts.SafeAdmin `json:"admin"`
}

// CreateAdminResponse confirms admin creation without issuing a token.
type CreateAdminResponse struct {
	Message string             `json:"mensaje"`
	Admin   accounts.SafeAdmin `json:"admin"`
}

// VerifyResponse resolves a raw bearer token to its principal. Tipo
// discriminates the namespace for clients that store both token kinds.
type VerifyResponse struct {
	Valid bool   `json:"valido"`
	User  any    `json:"usuario"`
	Type  string `json:"tipo"`
}
