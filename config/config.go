package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration surface, loaded from the environment.
// Defaults are documented in the envDefault tags and all overridable.
type Config struct {
	AppEnv       string `env:"APP_ENV" envDefault:"production"`
	AppPort      string `env:"APP_PORT" envDefault:"8080"`
	AllowOrigins string `env:"ALLOW_ORIGINS" envDefault:"http://localhost:5173"`

	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	JWT      JWT      `envPrefix:"JWT_"`
	OTP      OTP      `envPrefix:"OTP_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Gemini   Gemini   `envPrefix:"GEMINI_"`
	Geocode  Geocode  `envPrefix:"GEOCODE_"`
	Twilio   Twilio   `envPrefix:"TWILIO_"`
	Minio    Minio    `envPrefix:"MINIO_"`
	Limits   Limits   `envPrefix:"RATE_LIMIT_"`

	Admin SeedAdmin `envPrefix:"ADMIN_"`
}

type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"urbanfix"`
	Password string `env:"PASSWORD" envDefault:"urbanfix"`
	Name     string `env:"NAME" envDefault:"urbanfix"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type JWT struct {
	Secret string        `env:"SECRET,required"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
}

type OTP struct {
	Length      int           `env:"LENGTH" envDefault:"6"`
	TTL         time.Duration `env:"TTL" envDefault:"5m"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
}

type SMTP struct {
	Host string `env:"HOST"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
	From string `env:"FROM"`
}

type Gemini struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.0-flash"`
}

type Geocode struct {
	BaseURL   string `env:"BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	UserAgent string `env:"USER_AGENT" envDefault:"UrbanFixApp/1.0"`
}

type Twilio struct {
	AccountSID string `env:"ACCOUNT_SID"`
	AuthToken  string `env:"AUTH_TOKEN"`
	From       string `env:"FROM_NUMBER"`
}

type Minio struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"urbanfix-media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:9000"`
}

// Limits is the OTP-issuing request budget per client IP.
type Limits struct {
	OTPRequests int           `env:"OTP_REQUESTS" envDefault:"5"`
	OTPWindow   time.Duration `env:"OTP_WINDOW" envDefault:"15m"`
}

type SeedAdmin struct {
	Name     string `env:"NAME"`
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return &cfg, nil
}
