package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/logger"
)

const insertTimeout = 5 * time.Second

// Entry describes one back-office mutation to record.
type Entry struct {
	AdminID    uuid.UUID
	AdminEmail string
	Action     string
	Method     string
	Path       string
	ClientIP   string
}

// Recorder writes admin action logs. Inserts run asynchronously and are
// best-effort: a failed insert is logged but never fails the request that
// triggered it.
type Recorder struct {
	db   *gorm.DB
	logg *logger.Logger
	wg   sync.WaitGroup
}

func NewRecorder(db *gorm.DB, logg *logger.Logger) *Recorder {
	return &Recorder{db: db, logg: logg}
}

func (r *Recorder) Record(entry Entry) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		defer cancel()

		if err := r.insert(ctx, entry); err != nil {
			ctx = r.logg.WithFields(ctx, map[string]any{
				"admin_id": entry.AdminID.String(),
				"accion":   entry.Action,
				"error":    err.Error(),
			})
			r.logg.Warn(ctx, "audit.insert_failed")
		}
	}()
}

func (r *Recorder) insert(ctx context.Context, entry Entry) error {
	row := models.AdminActionLog{
		AdminID:    entry.AdminID,
		AdminEmail: entry.AdminEmail,
		Action:     entry.Action,
		Method:     entry.Method,
		Path:       entry.Path,
		ClientIP:   entry.ClientIP,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Wait blocks until all pending inserts finish. Used during shutdown and in
// tests.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
