package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DB = config.DB{
		Host:     "db.example.com",
		Port:     3306,
		User:     "nsupdate",
		Password: "secret",
		Name:     "journal",
		Extras:   "parseTime=True&loc=Local",
	}

	return &cfg
}

func TestCreate(t *testing.T) {
	assert.Equal(t,
		"nsupdate:secret@tcp(db.example.com:3306)/journal?parseTime=True&loc=Local",
		Create(testConfig()))
}

func TestPostgres(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Port = 5432
	cfg.DB.Extras = "sslmode=disable&TimeZone=UTC"

	assert.Equal(t,
		"host=db.example.com port=5432 user=nsupdate password=secret dbname=journal sslmode=disable TimeZone=UTC",
		Postgres(cfg))

	cfg.DB.Extras = ""
	assert.Equal(t,
		"host=db.example.com port=5432 user=nsupdate password=secret dbname=journal",
		Postgres(cfg))
}
