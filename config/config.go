package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultJWTSecret is used when JWT_SECRET is unset and JWT_SECRET_REQUIRED is
// not enabled. Anyone who knows it can mint valid tokens.
const DefaultJWTSecret = "mySecretKey"

type Config struct {
	Port string

	DB DBConfig

	// AtomicGraph wraps follow/unfollow writes in a single transaction.
	AtomicGraph bool

	JWTSecret          string
	JWTSecretDefaulted bool
	JWTTTL             time.Duration

	LogLevel string
	LogFile  string

	CORSOrigins []string
}

type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	SQLitePath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	Trace bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	env := &envReader{}
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            os.Getenv("DB_PORT"),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            os.Getenv("DB_NAME"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("SQLITE_PATH", "tells.db"),
			MaxOpenConns:    env.Int("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns:    env.Int("DB_MAX_IDLE_CONNS", 0),
			ConnMaxLifetime: env.Duration("DB_CONN_MAX_LIFETIME", 0),
			Trace:           env.Bool("DB_TRACE", false),
		},
		AtomicGraph: env.Bool("STORE_ATOMIC_GRAPH", false),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      env.Duration("JWT_TTL", time.Hour),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	secretRequired := env.Bool("JWT_SECRET_REQUIRED", false)
	if len(env.errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %s", strings.Join(env.errs, "; "))
	}

	if cfg.JWTSecret == "" {
		if secretRequired {
			return nil, fmt.Errorf("JWT_SECRET is not set and JWT_SECRET_REQUIRED is enabled")
		}
		cfg.JWTSecret = DefaultJWTSecret
		cfg.JWTSecretDefaulted = true
	}

	switch cfg.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// envReader parses typed variables and collects every malformed value so
// FromEnv can report them together.
type envReader struct {
	errs []string
}

func (e *envReader) fail(key, val string, err error) {
	e.errs = append(e.errs, fmt.Sprintf("%s=%q: %v", key, val, err))
}

func (e *envReader) Int(key string, defaultVal int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		e.fail(key, val, err)
		return defaultVal
	}
	return i
}

func (e *envReader) Bool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		e.fail(key, val, err)
		return defaultVal
	}
	return b
}

func (e *envReader) Duration(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		e.fail(key, val, err)
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
