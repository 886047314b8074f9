// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one applied change set.
type Entry struct {
	ID        string `gorm:"primaryKey;size:36"`
	Zone      string `gorm:"index;size:255"`
	Server    string `gorm:"size:255"`
	Backend   string `gorm:"size:16"`
	User      string `gorm:"size:255"`
	OldSerial uint32
	NewSerial uint32
	Adds      int
	Deletes   int
	Batch     string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// BeforeCreate assigns a random ID to new entries.
func (e *Entry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	return nil
}
