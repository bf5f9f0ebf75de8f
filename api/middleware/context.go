package middleware

import (
	"context"

	"github.com/fondita/fondita-backend/pkg/db/models"
)

type contextKey string

const (
	ctxCustomer contextKey = "customer"
	ctxAdmin    contextKey = "admin"
)

// WithCustomer injects the authenticated customer into the context.
func WithCustomer(ctx context.Context, customer *models.Customer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCustomer, customer)
}

func CustomerFromContext(ctx context.Context) *models.Customer {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCustomer).(*models.Customer); ok {
		return v
	}
	return nil
}

// WithAdmin injects the authenticated admin into the context.
func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, admin)
}

func AdminFromContext(ctx context.Context) *models.Admin {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxAdmin).(*models.Admin); ok {
		return v
	}
	return nil
}
