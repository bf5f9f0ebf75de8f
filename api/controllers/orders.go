package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/api/middleware"
	"github.com/fondita/fondita-backend/api/responses"
	"github.com/fondita/fondita-backend/api/validators"
	ordersvc "github.com/fondita/fondita-backend/internal/orders"
	"github.com/fondita/fondita-backend/pkg/logger"
)

const orderIDParam = "pedidoID"

// CreateOrder accepts guest and authenticated checkouts. When OptionalAuth
// resolved a customer, the order records their id.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ordersvc.CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var customerID *uuid.UUID
		if customer := middleware.CustomerFromContext(r.Context()); customer != nil {
			customerID = &customer.ID
		}

		resp, err := svc.Create(r.Context(), payload, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// ListOrders is the admin order review listing.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// UpdateOrderStatus moves an order through the kitchen lifecycle.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, orderIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ordersvc.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
