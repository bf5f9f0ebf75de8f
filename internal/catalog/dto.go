package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondita/fondita-backend/pkg/db/models"
)

// ProductRequest covers create and full update. Precio is a pointer so a
// missing price is distinguishable from an explicit zero.
type ProductRequest struct {
	Name        string           `json:"nombre" validate:"required"`
	Description *string          `json:"descripcion,omitempty"`
	Price       *decimal.Decimal `json:"precio" validate:"required"`
	Category    *string          `json:"categoria,omitempty"`
	Image       *string          `json:"imagen,omitempty"`
	Available   *bool            `json:"disponible,omitempty"`
}

// AvailabilityRequest toggles disponible without touching other fields.
type AvailabilityRequest struct {
	Available *bool `json:"disponible" validate:"required"`
}

// ProductDTO is the wire shape of a menu item.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"nombre"`
	Description *string         `json:"descripcion,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	Category    *string         `json:"categoria,omitempty"`
	Image       *string         `json:"imagen,omitempty"`
	Available   bool            `json:"disponible"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DeleteResponse confirms removal by echoing the product's name.
type DeleteResponse struct {
	Message string `json:"mensaje"`
	Name    string `json:"nombre"`
}

func dtoFromModel(product *models.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       product.Image,
		Available:   product.Available,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
