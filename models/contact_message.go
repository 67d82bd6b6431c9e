package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusArchived MessageStatus = "archived"
)

// Valid reports whether s is a stored status.
func (s MessageStatus) Valid() bool {
	return s == MessageStatusNew || s == MessageStatusArchived
}

// CanBecome reports whether a message in status s may move to next.
// The only transition is new to archived.
func (s MessageStatus) CanBecome(next MessageStatus) bool {
	return s == next || (s == MessageStatusNew && next == MessageStatusArchived)
}

type ContactMessage struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string        `json:"name" gorm:"type:text;not null"`
	Email     string        `json:"email" gorm:"type:text;not null"`
	Subject   string        `json:"subject" gorm:"type:text;not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    MessageStatus `json:"status" gorm:"type:text;not null;default:'new';index"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MessageStatusNew
	}
	return nil
}
