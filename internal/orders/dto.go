package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
)

// OrderItemRequest is one cart line as submitted at checkout.
type OrderItemRequest struct {
	Name     string           `json:"nombre" validate:"required"`
	Quantity int              `json:"cantidad" validate:"required,gt=0"`
	Price    *decimal.Decimal `json:"precio" validate:"required"`
}

// CreateOrderRequest is a checkout submission. Totals are persisted as
// submitted; the kitchen reconciles by hand at this scale.
type CreateOrderRequest struct {
	CustomerName    string             `json:"cliente_nombre" validate:"required"`
	CustomerPhone   string             `json:"cliente_telefono" validate:"required"`
	CustomerAddress string             `json:"cliente_direccion" validate:"required"`
	Notes           *string            `json:"observaciones,omitempty"`
	Items           []OrderItemRequest `json:"productos" validate:"required,min=1,dive"`
	Total           *decimal.Decimal   `json:"total" validate:"required"`
}

// UpdateStatusRequest moves an order through the kitchen lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"estado" validate:"required"`
}

// OrderDTO is the wire shape of an order with structured line items.
type OrderDTO struct {
	ID              uuid.UUID          `json:"id"`
	CustomerName    string             `json:"cliente_nombre"`
	CustomerPhone   string             `json:"cliente_telefono"`
	CustomerAddress string             `json:"cliente_direccion"`
	Notes           *string            `json:"observaciones,omitempty"`
	Items           []models.OrderItem `json:"productos"`
	Total           decimal.Decimal    `json:"total"`
	Status          enums.OrderStatus  `json:"estado"`
	UserID          *uuid.UUID         `json:"usuario_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CreateOrderResponse confirms a checkout.
type CreateOrderResponse struct {
	Message string   `json:"mensaje"`
	Order   OrderDTO `json:"pedido"`
}

func dtoFromModel(order *models.Order) OrderDTO {
	return OrderDTO{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Notes:           order.Notes,
		Items:           order.Items,
		Total:           order.Total,
		Status:          order.Status,
		UserID:          order.UserID,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
