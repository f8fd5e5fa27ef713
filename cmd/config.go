package cmd

import (
	"fmt"
	"time"
)

// Config carries all runtime settings, populated from environment variables.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// ProofBaseURL is the public base URL of the object store holding
	// payment proof uploads.
	ProofBaseURL string `env:"PROOF_BASE_URL,required"`

	// NotificationRetention is how long read notifications are kept
	// before the retention sweep deletes them.
	NotificationRetention time.Duration `env:"NOTIFICATION_RETENTION" envDefault:"720h"`
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
