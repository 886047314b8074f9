// Package db opens the journal database.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/dsn"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/logger/adapter/stdlogger"
)

// Engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// ErrUnknownEngine is returned for an engine not listed above.
var ErrUnknownEngine = errors.New("unknown journal engine")

// Open connects to the journal database and migrates its schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Journal.Engine {
	case "", EngineSQLite:
		dialector = sqlite.Open(cfg.Journal.Path)
	case EngineMySQL:
		dialector = mysql.Open(dsn.Create(cfg))
	case EnginePostgres:
		dialector = postgres.Open(dsn.Postgres(cfg))
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.Journal.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlogger.NewComponent("gorm", zerolog.DebugLevel),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect journal database")
	}

	if err = db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate journal database")
	}

	log.Debug().Str("engine", cfg.Journal.Engine).Msg("journal database opened")

	return db, nil
}
