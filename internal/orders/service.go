package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
)

const orderNotFoundMessage = "Pedido no encontrado"

// Service defines the behavior needed by the orders controller.
type Service interface {
	Create(ctx context.Context, req CreateOrderRequest, customerID *uuid.UUID) (*CreateOrderResponse, error)
	List(ctx context.Context) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*OrderDTO, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
}

type service struct {
	orders orderRepository
}

// NewService constructs the orders service.
func NewService(orders orderRepository) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{orders: orders}, nil
}

// Create persists a checkout submission. Line items and total are stored
// verbatim as a snapshot; customerID is set when the caller was resolved by
// optional auth and nil for guests.
func (s *service) Create(ctx context.Context, req CreateOrderRequest, customerID *uuid.UUID) (*CreateOrderResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			Name:     strings.TrimSpace(item.Name),
			Quantity: item.Quantity,
			Price:    *item.Price,
		})
	}

	order, err := s.orders.Create(ctx, &models.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Notes:           req.Notes,
		Items:           items,
		Total:           *req.Total,
		Status:          enums.OrderStatusPending,
		UserID:          customerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	return &CreateOrderResponse{
		Message: "Pedido creado exitosamente",
		Order:   dtoFromModel(order),
	}, nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.orders.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromModel(&rows[i]))
	}
	return dtos, nil
}

// UpdateStatus applies a lifecycle transition. Terminal states are immutable.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*OrderDTO, error) {
	status, err := enums.ParseOrderStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Estado de pedido inválido").
			WithDetails(map[string]any{"estado": rawStatus})
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}

	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("Un pedido %s no puede cambiar de estado", order.Status)).
			WithDetails(map[string]any{"estado_actual": order.Status.String()})
	}

	order.Status = status
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	dto := dtoFromModel(updated)
	return &dto, nil
}

func validateCreate(req CreateOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "El nombre del cliente es requerido")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "El teléfono del cliente es requerido")
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "La dirección del cliente es requerida")
	}
	if len(req.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "El pedido debe incluir al menos un producto")
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || item.Price == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "Producto del pedido inválido")
		}
		if item.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "El precio no puede ser negativo")
		}
	}
	if req.Total == nil || req.Total.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "El total es requerido y no puede ser negativo")
	}
	return nil
}
