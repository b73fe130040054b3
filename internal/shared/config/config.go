package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port                string   `mapstructure:"PORT"`
	Env                 string   `mapstructure:"ENV"`
	DatabaseURL         string   `mapstructure:"DATABASE_URL"`
	CORSAllowOrigin     []string `mapstructure:"-"`
	ObjectStoreType     string   `mapstructure:"OBJECT_STORE"`
	LocalStoreDir       string   `mapstructure:"LOCAL_STORE_DIR"`
	AWSRegion           string   `mapstructure:"AWS_REGION"`
	S3Bucket            string   `mapstructure:"S3_BUCKET"`
	S3Prefix            string   `mapstructure:"S3_PREFIX"`
	SSEKMSKeyID         string   `mapstructure:"SSE_KMS_KEY_ID"`
	JWTSecret           string   `mapstructure:"JWT_SECRET"`
	JWTExpirationHours  int      `mapstructure:"JWT_EXPIRATION_HOURS"`
	BcryptCost          int      `mapstructure:"BCRYPT_COST"`
	PasswordPepper      string   `mapstructure:"PASSWORD_PEPPER"`
	RabbitMQURL         string   `mapstructure:"RABBITMQ_URL"`
	MatchEventsExchange string   `mapstructure:"MATCH_EVENTS_EXCHANGE"`
	LogJSON             bool     `mapstructure:"LOG_JSON"`
	LogDebug            bool     `mapstructure:"LOG_DEBUG"`
	GoogleClientID      string   `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL   string   `mapstructure:"GOOGLE_REDIRECT_URL"`
	UIRedirectURL       string   `mapstructure:"UI_REDIRECT_URL"`
	MatchRateLimitRPS   float64  `mapstructure:"RATE_LIMIT_MATCH_RPS"`
	MatchRateLimitBurst int      `mapstructure:"RATE_LIMIT_MATCH_BURST"`
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"ENV":                    "dev",
	"DATABASE_URL":           "",
	"CORS_ALLOW_ORIGINS":     "http://localhost:5173",
	"OBJECT_STORE":           "local",
	"LOCAL_STORE_DIR":        "./data",
	"AWS_REGION":             "",
	"S3_BUCKET":              "",
	"S3_PREFIX":              "",
	"SSE_KMS_KEY_ID":         "",
	"JWT_SECRET":             "",
	"JWT_EXPIRATION_HOURS":   24,
	"BCRYPT_COST":            12,
	"PASSWORD_PEPPER":        "",
	"RABBITMQ_URL":           "",
	"MATCH_EVENTS_EXCHANGE":  "wevolve.matches",
	"LOG_JSON":               true,
	"LOG_DEBUG":              false,
	"GOOGLE_CLIENT_ID":       "",
	"GOOGLE_CLIENT_SECRET":   "",
	"GOOGLE_REDIRECT_URL":    "",
	"UI_REDIRECT_URL":        "",
	"RATE_LIMIT_MATCH_RPS":   2.0,
	"RATE_LIMIT_MATCH_BURST": 10,
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("config: %v", err)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)
	cfg.CORSAllowOrigin = splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS"))
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 12
	}
	if cfg.JWTExpirationHours <= 0 {
		cfg.JWTExpirationHours = 24
	}

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if cfg.Env == "production" && cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET is required in production")
	}
	return cfg
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
