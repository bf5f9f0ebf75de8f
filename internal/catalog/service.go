package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/db/models"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
)

const productNotFoundMessage = "Producto no encontrado"

// Service defines the behavior needed by the products controller.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, req ProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductDTO, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResponse, error)
}

type productRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	products productRepository
}

// NewService constructs the catalog service.
func NewService(products productRepository) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{products: products}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := dtoFromModel(product)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, req ProductRequest) (*ProductDTO, error) {
	fields, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product, err := s.products.Create(ctx, &models.Product{
		Name:        fields.name,
		Description: fields.description,
		Price:       fields.price,
		Category:    fields.category,
		Image:       fields.image,
		Available:   available,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	dto := dtoFromModel(product)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductDTO, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	product.Name = fields.name
	product.Description = fields.description
	product.Price = fields.price
	product.Category = fields.category
	product.Image = fields.image
	if req.Available != nil {
		product.Available = *req.Available
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	dto := dtoFromModel(updated)
	return &dto, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*ProductDTO, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Available = available
	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update availability")
	}

	dto := dtoFromModel(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}

	return &DeleteResponse{
		Message: "Producto eliminado exitosamente",
		Name:    product.Name,
	}, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

type normalizedFields struct {
	name        string
	description *string
	price       decimal.Decimal
	category    *string
	image       *string
}

func normalizeRequest(req ProductRequest) (normalizedFields, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return normalizedFields{}, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	if req.Price == nil {
		return normalizedFields{}, pkgerrors.New(pkgerrors.CodeValidation, "El precio es requerido")
	}
	if req.Price.IsNegative() {
		return normalizedFields{}, pkgerrors.New(pkgerrors.CodeValidation, "El precio no puede ser negativo")
	}

	return normalizedFields{
		name:        name,
		description: trimPtr(req.Description),
		price:       req.Price.Round(2),
		category:    trimPtr(req.Category),
		image:       trimPtr(req.Image),
	}, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
