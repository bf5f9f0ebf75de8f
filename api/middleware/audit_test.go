package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/internal/audit"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
)

type stubAuditRecorder struct {
	entries []audit.Entry
}

func (s *stubAuditRecorder) Record(entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func TestAuditLogRecordsSuccessfulMutation(t *testing.T) {
	recorder := &stubAuditRecorder{}
	admin := &models.Admin{ID: uuid.New(), Email: "admin@fondita.mx", Role: enums.AdminRoleAdmin, Active: true}

	handler := AuditLog(recorder, "crear_producto")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req = req.WithContext(WithAdmin(req.Context(), admin))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.AdminID != admin.ID || entry.Action != "crear_producto" || entry.ClientIP != "203.0.113.7" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestAuditLogSkipsFailedResponses(t *testing.T) {
	recorder := &stubAuditRecorder{}
	admin := &models.Admin{ID: uuid.New(), Email: "admin@fondita.mx", Role: enums.AdminRoleAdmin, Active: true}

	handler := AuditLog(recorder, "crear_producto")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
	req = req.WithContext(WithAdmin(req.Context(), admin))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(recorder.entries) != 0 {
		t.Fatalf("failed responses must not be audited, got %d entries", len(recorder.entries))
	}
}

func TestAuditLogSkipsWithoutAdmin(t *testing.T) {
	recorder := &stubAuditRecorder{}
	handler := AuditLog(recorder, "crear_producto")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/productos", nil))

	if len(recorder.entries) != 0 {
		t.Fatalf("requests without an admin must not be audited, got %d entries", len(recorder.entries))
	}
}
