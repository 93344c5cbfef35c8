package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL" default:"sqlite://fintrack.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

type Jwt struct {
	Secret    string        `envconfig:"SECRET" required:"true"`
	Expiry    time.Duration `envconfig:"EXPIRY" default:"30m"`
	Algorithm string        `envconfig:"ALGORITHM" default:"HS256"`
	Issuer    string        `envconfig:"ISSUER" default:""`
}

// Hash holds the argon2id cost parameters used for new password hashes.
type Hash struct {
	Memory      uint32 `envconfig:"MEMORY" default:"65536"`
	Iterations  uint32 `envconfig:"ITERATIONS" default:"3"`
	Parallelism uint8  `envconfig:"PARALLELISM" default:"2"`
	SaltLength  uint32 `envconfig:"SALT_LENGTH" default:"16"`
	KeyLength   uint32 `envconfig:"KEY_LENGTH" default:"32"`
}

type Auth struct {
	Jwt  *Jwt  `envconfig:"JWT"`
	Hash *Hash `envconfig:"HASH"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"fintrack:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// RateLimit disables the limiter when MaxRequests is zero or negative.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Pagination struct {
	DefaultLimit int `envconfig:"DEFAULT_LIMIT" default:"100"`
	MaxLimit     int `envconfig:"MAX_LIMIT" default:"500"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fintrack]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"8000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// ProxyHeader names the client address header set by a reverse proxy.
	// It is only honoured for requests arriving from TrustedProxies.
	ProxyHeader    string   `envconfig:"PROXY_HEADER"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Name       string      `envconfig:"APP_NAME" default:"Personal Finance Tracker API"`
	Version    string      `envconfig:"APP_VERSION" default:"1.0.0"`
	APIPrefix  string      `envconfig:"API_PREFIX" default:"/api/v1"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DATABASE"`
	Auth       *Auth       `envconfig:"AUTH"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	Pagination *Pagination `envconfig:"PAGINATION"`
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Validate reports settings that envconfig tags cannot express.
func (a *App) Validate() error {
	if a.Auth == nil || a.Auth.Jwt == nil {
		return errors.New("auth jwt configuration is missing")
	}
	if strings.TrimSpace(a.Auth.Jwt.Secret) == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if _, ok := supportedAlgorithms[a.Auth.Jwt.Algorithm]; !ok {
		return fmt.Errorf("unsupported AUTH_JWT_ALGORITHM %q", a.Auth.Jwt.Algorithm)
	}
	if a.Auth.Jwt.Expiry <= 0 {
		return errors.New("AUTH_JWT_EXPIRY must be positive")
	}
	if a.Pagination != nil && a.Pagination.DefaultLimit > a.Pagination.MaxLimit {
		return errors.New("PAGINATION_DEFAULT_LIMIT exceeds PAGINATION_MAX_LIMIT")
	}
	return nil
}
