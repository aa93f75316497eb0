package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/campaign-signup/auth"
)

// Database types selected from the connection string
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port              int           `env:"PORT" envDefault:"3318"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"file:project.db"`
	DatabaseType      string        `env:"-"`
	SecretKey         string        `env:"SECRET_KEY"`
	AdminUsername     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	CountryCode       string        `env:"WHATSAPP_COUNTRY_CODE" envDefault:"55"`
	InitDB            bool          `env:"-"`
}

// ParseFlags loads .env, reads the environment, then lets CLI flags override
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; real environment variables always win
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("campaign-signup", flag.ContinueOnError)

	port := fs.Int("p", 0, "Server port")
	dbURL := fs.String("d", "", "Database URL (postgres://... or a SQLite file)")
	secret := fs.String("secret", "", "Session signing key (prefer env)")
	adminUser := fs.String("admin-user", "", "Admin username")
	fs.BoolVar(&cfg.InitDB, "init-db", false, "Create the database schema and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *port != 0 {
		cfg.Port = *port
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if *secret != "" {
		cfg.SecretKey = *secret
	}
	if *adminUser != "" {
		cfg.AdminUsername = *adminUser
	}

	cfg.DatabaseURL, cfg.DatabaseType = NormalizeDatabaseURL(cfg.DatabaseURL)

	// Schema creation only needs the database
	if cfg.InitDB {
		return cfg, nil
	}

	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY required")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}

	if cfg.AdminPasswordHash == "" {
		if cfg.AdminPassword == "" {
			return Config{}, errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD required")
		}
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return Config{}, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = hash
	}
	// The plaintext is not needed past this point
	cfg.AdminPassword = ""

	return cfg, nil
}

// NormalizeDatabaseURL picks the driver from the URL scheme.
// Heroku-style postgres:// URLs are accepted as-is by lib/pq; anything else
// is treated as a SQLite path or DSN.
func NormalizeDatabaseURL(raw string) (url, dbType string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw, DatabasePostgres
	}
	return raw, DatabaseSQLite
}
