package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminActionLog is a best-effort audit record of back-office mutations.
type AdminActionLog struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminID    uuid.UUID `gorm:"column:admin_id;type:uuid;not null"`
	AdminEmail string    `gorm:"column:admin_email;not null"`
	Action     string    `gorm:"column:accion;not null"`
	Method     string    `gorm:"column:metodo;not null"`
	Path       string    `gorm:"column:ruta;not null"`
	ClientIP   string    `gorm:"column:ip_cliente"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AdminActionLog) TableName() string { return "admin_action_log" }

func (l *AdminActionLog) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
