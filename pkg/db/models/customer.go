package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/enums"
)

// Customer is a public storefront account. Column names keep the canonical
// Spanish wire vocabulary.
type Customer struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `gorm:"column:nombre;not null"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Phone        *string    `gorm:"column:telefono"`
	Address      *string    `gorm:"column:direccion"`
	Role         string     `gorm:"column:rol;not null;default:cliente"`
	Active       bool       `gorm:"column:activo;not null;default:true"`
	LastAccessAt *time.Time `gorm:"column:ultimo_acceso"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "usuarios" }

// BeforeCreate assigns the id client-side so sqlite works without pgcrypto.
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Role == "" {
		c.Role = enums.CustomerRole
	}
	return nil
}
