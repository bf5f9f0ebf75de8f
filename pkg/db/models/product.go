package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu item on the public catalog.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:nombre;not null"`
	Description *string         `gorm:"column:descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:numeric(10,2);not null"`
	Category    *string         `gorm:"column:categoria"`
	Image       *string         `gorm:"column:imagen"`
	Available   bool            `gorm:"column:disponible;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "productos" }

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
