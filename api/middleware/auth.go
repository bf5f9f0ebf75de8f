package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/api/responses"
	"github.com/fondita/fondita-backend/api/validators"
	pkgauth "github.com/fondita/fondita-backend/pkg/auth"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
	"github.com/fondita/fondita-backend/pkg/logger"
)

type customerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type adminFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// RequireCustomer authenticates the customer token namespace and seeds the
// request context with the stored account.
func RequireCustomer(cfg config.JWTConfig, customers customerFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customer, err := resolveCustomer(r, cfg, customers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if !customer.Active {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAccountDisabled, ""))
				return
			}

			ctx := WithCustomer(r.Context(), customer)
			if logg != nil {
				ctx = logg.WithUserID(ctx, customer.ID.String())
				ctx = logg.WithActorRole(ctx, customer.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin authenticates the admin token namespace. A valid token whose
// stored admin has been deactivated is rejected distinctly from a bad token.
func RequireAdmin(cfg config.JWTConfig, admins adminFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.ExtractBearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := pkgauth.Parse(cfg, token, enums.TokenKindAdmin)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, tokenError(err))
				return
			}

			subjectID, err := claims.SubjectID()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidToken, ""))
				return
			}

			admin, err := admins.FindByID(r.Context(), subjectID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUserNotFound, ""))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find admin"))
				return
			}
			if !admin.Active {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAdminInactive, ""))
				return
			}

			ctx := WithAdmin(r.Context(), admin)
			if logg != nil {
				ctx = logg.WithAdminID(ctx, admin.ID.String())
				ctx = logg.WithActorRole(ctx, admin.Role.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves a customer when a valid token is present and proceeds
// anonymously otherwise. It never rejects the request.
func OptionalAuth(cfg config.JWTConfig, customers customerFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customer, err := resolveCustomer(r, cfg, customers)
			if err != nil || !customer.Active {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCustomer(r.Context(), customer)
			if logg != nil {
				ctx = logg.WithUserID(ctx, customer.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveCustomer(r *http.Request, cfg config.JWTConfig, customers customerFinder) (*models.Customer, error) {
	token, err := validators.ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := pkgauth.Parse(cfg, token, enums.TokenKindCustomer)
	if err != nil {
		return nil, tokenError(err)
	}

	subjectID, err := claims.SubjectID()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "")
	}

	customer, err := customers.FindByID(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUserNotFound, "")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find customer")
	}
	return customer, nil
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return pkgerrors.New(pkgerrors.CodeExpiredToken, "")
	}
	return pkgerrors.New(pkgerrors.CodeInvalidToken, "")
}
