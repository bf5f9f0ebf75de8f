package middleware

import (
	"net/http"

	"github.com/fondita/fondita-backend/internal/audit"
)

type auditRecorder interface {
	Record(audit.Entry)
}

// AuditLog records a back-office mutation after a successful admin response.
// It must run after RequireAdmin; failures in the recorder never surface here.
func AuditLog(recorder auditRecorder, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			if rec.status < 200 || rec.status >= 300 || recorder == nil {
				return
			}

			admin := AdminFromContext(r.Context())
			if admin == nil {
				return
			}

			recorder.Record(audit.Entry{
				AdminID:    admin.ID,
				AdminEmail: admin.Email,
				Action:     action,
				Method:     r.Method,
				Path:       r.URL.Path,
				ClientIP:   clientIP(r),
			})
		})
	}
}
