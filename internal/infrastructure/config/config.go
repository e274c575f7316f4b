package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Upload   UploadConfig
	Schedule ScheduleConfig
	Static   StaticConfig
	Report   ReportConfig
	Seed     SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=onboarding_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type UploadConfig struct {
	Dir string `env:"UPLOAD_DIR, default=./uploads"`
	// MaxBytes caps a single uploaded credential artifact (default 10 MiB).
	MaxBytes int64 `env:"MAX_UPLOAD_BYTES, default=10485760"`
}

type ScheduleConfig struct {
	// Timezone is the fixed business timezone all dates and slot times are
	// interpreted in.
	Timezone    string `env:"BUSINESS_TZ, default=America/Los_Angeles"`
	HorizonDays int    `env:"BOOKING_HORIZON_DAYS, default=60"`
	Workers     int    `env:"ACTIVITY_WORKERS, default=4"`
}

type StaticConfig struct {
	// Dir is served at the site root when it exists; empty disables it.
	Dir string `env:"STATIC_DIR, default=./public"`
}

// ReportConfig carries the static reference data rendered on the admin report.
// These strings are business data and deliberately live outside the code.
type ReportConfig struct {
	CompanyName      string `env:"REPORT_COMPANY_NAME,      default=nBrain"`
	ContactEmail     string `env:"REPORT_CONTACT_EMAIL,     default=onboarding@nbrain.ai"`
	ReferenceAccount string `env:"REPORT_REFERENCE_ACCOUNT"`
}

type SeedConfig struct {
	// AdminEmail is interpolated into the seeded credential instructions.
	AdminEmail string `env:"SEED_ADMIN_EMAIL, default=onboarding@nbrain.ai"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
