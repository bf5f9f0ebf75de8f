package middleware

import (
	"net/http"

	"github.com/fondita/fondita-backend/api/responses"
	"github.com/fondita/fondita-backend/pkg/enums"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
	"github.com/fondita/fondita-backend/pkg/logger"
)

// RequireRole allows only admins whose role is in the supplied closed set.
// It must run after RequireAdmin.
func RequireRole(logg *logger.Logger, roles ...enums.AdminRole) func(http.Handler) http.Handler {
	allowed := map[enums.AdminRole]bool{}
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := AdminFromContext(r.Context())
			if admin == nil || !allowed[admin.Role] {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInsufficientPermissions, ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
