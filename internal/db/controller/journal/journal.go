// Package journal provides the operations on the change journal.
package journal

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
)

// DefaultLimit is used by List when no positive limit is given.
const DefaultLimit = 20

var (
	// ErrEntryNotFound is returned when an entry is not found.
	ErrEntryNotFound = errors.New("journal entry not found")
	// ErrZoneEmpty is returned when attempting to record an entry without a zone.
	ErrZoneEmpty = errors.New("journal entry zone cannot be empty")
	// ErrEntryNil is returned when attempting to record a nil entry.
	ErrEntryNil = errors.New("journal entry is nil")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create records entry.
func Create(db *gorm.DB, entry *models.Entry) error {
	if db == nil {
		return ErrDBNil
	}
	if entry == nil {
		return ErrEntryNil
	}
	if entry.Zone == "" {
		return ErrZoneEmpty
	}

	return db.Create(entry).Error
}

// Get retrieves an entry by its ID.
func Get(db *gorm.DB, id string) (*models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entry models.Entry
	result := db.Where("id = ?", id).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, result.Error
	}

	return &entry, nil
}

// List returns the newest entries first. An empty zone lists all zones.
func List(db *gorm.DB, zone string, limit int) ([]models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := db.Order("created_at desc").Limit(limit)
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}

	var entries []models.Entry
	if result := query.Find(&entries); result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Recorder binds the journal to one database connection.
type Recorder struct {
	DB *gorm.DB
}

// Create records entry.
func (r Recorder) Create(entry *models.Entry) error {
	return Create(r.DB, entry)
}
