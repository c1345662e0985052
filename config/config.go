package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"turfsphere"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"turfsphere.db"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL        time.Duration `envconfig:"JWT_TTL" default:"24h"`
	SessionSecret string        `envconfig:"SESSION_SECRET" default:"turfsphere-session"`
	Port          string        `envconfig:"PORT" default:"8080"`
	Env           string        `envconfig:"ENV" default:"development"`
	Timezone      string        `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	DefaultRegion string        `envconfig:"DEFAULT_REGION" default:"IN"`
	CORSOrigins   []string      `envconfig:"CORS_ORIGINS"`
	OTPTTL        time.Duration `envconfig:"OTP_TTL" default:"10m"`

	RazorpayKey    string `envconfig:"RAZORPAY_KEY"`
	RazorpaySecret string `envconfig:"RAZORPAY_SECRET"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"turfsphere.bookings"`

	LogDir string `envconfig:"LOG_DIR" default:"logs"`

	AdminMobile   string `envconfig:"ADMIN_MOBILE"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the zone used to bucket dashboard dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig loads configuration from the environment, reading .env first when
// one is present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %v", err)
	}
	return &cfg, nil
}
