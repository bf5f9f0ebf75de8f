package audit

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/logger"
)

func newTestRecorder(t *testing.T) (*Recorder, *gorm.DB, *bytes.Buffer) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.AdminActionLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	var buf bytes.Buffer
	logg := logger.New(logger.Options{
		ServiceName: "audit-test",
		Level:       zerolog.WarnLevel,
		Output:      &buf,
	})
	return NewRecorder(conn, logg), conn, &buf
}

func TestRecordInsertsRow(t *testing.T) {
	recorder, conn, buf := newTestRecorder(t)

	adminID := uuid.New()
	recorder.Record(Entry{
		AdminID:    adminID,
		AdminEmail: "admin@fondita.mx",
		Action:     "crear_producto",
		Method:     "POST",
		Path:       "/api/admin/productos",
		ClientIP:   "203.0.113.7",
	})
	recorder.Wait()

	var rows []models.AdminActionLog
	if err := conn.Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(rows))
	}
	row := rows[0]
	if row.AdminID != adminID || row.Action != "crear_producto" || row.Method != "POST" {
		t.Fatalf("unexpected row %+v", row)
	}
	if buf.Len() != 0 {
		t.Fatalf("successful insert should not log: %s", buf.String())
	}
}

func TestRecordFailureIsBestEffort(t *testing.T) {
	recorder, conn, buf := newTestRecorder(t)

	// Drop the table so the insert fails.
	if err := conn.Migrator().DropTable(&models.AdminActionLog{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	recorder.Record(Entry{
		AdminID:    uuid.New(),
		AdminEmail: "admin@fondita.mx",
		Action:     "eliminar_producto",
		Method:     "DELETE",
		Path:       "/api/admin/productos/123",
	})
	recorder.Wait()

	if !bytes.Contains(buf.Bytes(), []byte("audit.insert_failed")) {
		t.Fatalf("expected warn log on failed insert, got: %s", buf.String())
	}
}
