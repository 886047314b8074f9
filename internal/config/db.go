package config

// DB holds the database configuration settings of the mysql and postgres journal engines.
type DB struct {
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
