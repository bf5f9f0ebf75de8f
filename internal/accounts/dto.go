package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/pkg/db/models"
)

// SafeCustomer is the customer payload exposed over the wire. The password
// hash never leaves the package.
type SafeCustomer struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"nombre"`
	Email        string     `json:"email"`
	Phone        *string    `json:"telefono,omitempty"`
	Address      *string    `json:"direccion,omitempty"`
	Role         string     `json:"rol"`
	Active       bool       `json:"activo"`
	LastAccessAt *time.Time `json:"ultimo_acceso,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func SafeCustomerFromModel(customer *models.Customer) SafeCustomer {
	return SafeCustomer{
		ID:           customer.ID,
		Name:         customer.Name,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Address:      customer.Address,
		Role:         customer.Role,
		Active:       customer.Active,
		LastAccessAt: customer.LastAccessAt,
		CreatedAt:    customer.CreatedAt,
	}
}

// SafeAdmin is the admin payload exposed over the wire.
type SafeAdmin struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"nombre"`
	Email        string     `json:"email"`
	Role         string     `json:"rol"`
	Active       bool       `json:"activo"`
	LastAccessAt *time.Time `json:"ultimo_acceso,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func SafeAdminFromModel(admin *models.Admin) SafeAdmin {
	return SafeAdmin{
		ID:           admin.ID,
		Name:         admin.Name,
		Email:        admin.Email,
		Role:         admin.Role.String(),
		Active:       admin.Active,
		LastAccessAt: admin.LastAccessAt,
		CreatedAt:    admin.CreatedAt,
	}
}
