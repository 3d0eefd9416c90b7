package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records one admin-authenticated request together with its
// serialized request and response bodies.
type AuditLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Email        string    `json:"email" gorm:"size:255"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20)"`
	Method       string    `json:"method" gorm:"size:10"`
	Path         string    `json:"path" gorm:"size:255;index"`
	Status       int       `json:"status"`
	RequestBody  string    `json:"request_body,omitempty" gorm:"type:text"`
	ResponseBody string    `json:"response_body,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
