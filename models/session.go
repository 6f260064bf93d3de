package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionTTL is how long a player session stays valid after login.
const SessionTTL = 24 * time.Hour

type Session struct {
	gorm.Model
	SID       string    `gorm:"size:36;uniqueIndex;not null"`
	UserID    uint      `gorm:"index"`
	User      User
	ExpiresAt time.Time `gorm:"index"`
}

// Expired reports whether the session has lapsed.
func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	s.SID = strings.ToLower(uuid.New().String())
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = time.Now().Add(SessionTTL)
	}
	return nil
}
