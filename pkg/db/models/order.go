package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/enums"
)

// OrderItem is a line-item snapshot captured at checkout. It is stored
// serialized inside the order row; product rows may change or disappear later
// without affecting history.
type OrderItem struct {
	Name     string          `json:"nombre"`
	Quantity int             `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
}

// Order is a checkout submission, guest or authenticated.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName    string            `gorm:"column:cliente_nombre;not null"`
	CustomerPhone   string            `gorm:"column:cliente_telefono;not null"`
	CustomerAddress string            `gorm:"column:cliente_direccion;not null"`
	Notes           *string           `gorm:"column:observaciones"`
	Items           []OrderItem       `gorm:"column:productos;type:text;serializer:json;not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	Status          enums.OrderStatus `gorm:"column:estado;not null;default:pendiente"`
	UserID          *uuid.UUID        `gorm:"column:usuario_id;type:uuid"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "pedidos" }

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enums.OrderStatusPending
	}
	return nil
}
