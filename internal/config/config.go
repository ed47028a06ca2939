package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver   string // sqlite | postgres
	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret      string
	GoogleClientID string
	AdminEmails    []string

	CatalogPath  string
	TemplatesDir string
	LogFile      string

	PaymentDelay    time.Duration
	PaymentTimeout  time.Duration
	ReelDelay       time.Duration
	ShowPromotional bool
}

func Load() Config {
	// .env is optional; real environment wins over it.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	driver := strings.ToLower(env("DB_DRIVER", "sqlite"))
	cfg := Config{
		Port:            env("PORT", "3000"),
		DBDriver:        driver,
		DBDSN:           os.Getenv("DB_DSN"),
		DBHost:          env("DB_HOST", "localhost"),
		DBPort:          env("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          env("DB_NAME", defaultDBName(driver)),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmails:     splitList(os.Getenv("ADMIN_EMAILS")),
		CatalogPath:     env("CATALOG_PATH", "./catalogs.db"),
		TemplatesDir:    env("TEMPLATES_DIR", "./web/templates"),
		LogFile:         os.Getenv("LOG_FILE"),
		PaymentDelay:    duration("PAYMENT_DELAY", time.Second),
		PaymentTimeout:  duration("PAYMENT_TIMEOUT", 10*time.Second),
		ReelDelay:       duration("REEL_DELAY", 3*time.Second),
		ShowPromotional: boolean("SHOW_PROMOTIONAL", false),
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_NAME=%s CATALOG_PATH=%s LOG_FILE=%s JWT_SECRET=%s GOOGLE_CLIENT_ID=%s REEL_DELAY=%s",
		cfg.Port, cfg.DBDriver, cfg.DBName, cfg.CatalogPath, cfg.LogFile, mask(cfg.JWTSecret), cfg.GoogleClientID, cfg.ReelDelay)
	return cfg
}

// DSN returns the data source name for DBDriver. DB_DSN overrides the
// assembled value.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	}
	return c.DBName
}

// defaultDBName is a file path for sqlite and a database name for postgres.
func defaultDBName(driver string) string {
	if driver == "postgres" {
		return "storefront"
	}
	return "storefront.db"
}

// IsAdmin reports whether email is on the ADMIN_EMAILS allow-list.
func (c Config) IsAdmin(email string) bool {
	for _, a := range c.AdminEmails {
		if strings.EqualFold(a, strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[warn] %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}

func boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "****"
}
