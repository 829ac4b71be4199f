package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer = "invoicer"

	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

var bankDetailKeys = []struct{ env, label string }{
	{"INVOICE_BANK_ACCOUNT_NAME", "Account Name"},
	{"INVOICE_BANK_ACCOUNT_NUMBER", "Account Number"},
	{"INVOICE_BANK_NAME", "Bank Name"},
	{"INVOICE_BANK_SWIFT", "SWIFT Code"},
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LogLevel          string
	StoreDriver       string

	Storage  StorageConfig
	Invoice  InvoiceConfig
	Limits   RateLimitConfig
	RedisURL string

	CORSAllowedOrigins []string
	Bootstrap          BootstrapConfig
}

// StorageConfig selects and configures the artifact backend.
type StorageConfig struct {
	Backend        string
	LocalDir       string
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// InvoiceConfig drives invoice synthesis.
type InvoiceConfig struct {
	TemplateDir  string
	TemplateName string
	Location     *time.Location
	WordsLocale  string
	BankDetails  []string // printed under bank invoices, in order
}

// RateLimitConfig holds ulule/limiter formatted rates such as "10-M".
type RateLimitConfig struct {
	Login string
	API   string
}

// BootstrapConfig seeds the first super admin when the email is set.
type BootstrapConfig struct {
	Email    string
	Password string
	Username string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("STORAGE_BACKEND", StorageBackendLocal)
	viper.SetDefault("STORAGE_LOCAL_DIR", "./data/artifacts")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_USE_PATH_STYLE", true)
	viper.SetDefault("TEMPLATE_DIR", "./templates")
	viper.SetDefault("INVOICE_TEMPLATE_NAME", "InvoiceTemplate.xlsx")
	viper.SetDefault("INVOICE_TIMEZONE", "UTC")
	viper.SetDefault("INVOICE_WORDS_LOCALE", "en")
	for _, key := range bankDetailKeys {
		viper.SetDefault(key.env, "")
	}
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("API_RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("BOOTSTRAP_SUPERADMIN_EMAIL", "")
	viper.SetDefault("BOOTSTRAP_SUPERADMIN_PASSWORD", "")
	viper.SetDefault("BOOTSTRAP_SUPERADMIN_USERNAME", "superadmin")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTIssuer:     viper.GetString("JWT_ISSUER"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		StoreDriver:   strings.ToLower(viper.GetString("STORE_DRIVER")),
		RedisURL:      viper.GetString("REDIS_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER=memory, data is lost on restart.")
	default:
		log.Printf("Warning: Unknown STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}

	cfg.Storage = StorageConfig{
		Backend:        strings.ToLower(viper.GetString("STORAGE_BACKEND")),
		LocalDir:       viper.GetString("STORAGE_LOCAL_DIR"),
		S3Endpoint:     viper.GetString("S3_ENDPOINT"),
		S3Region:       viper.GetString("S3_REGION"),
		S3Bucket:       viper.GetString("S3_BUCKET"),
		S3AccessKey:    viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:    viper.GetString("S3_SECRET_KEY"),
		S3UsePathStyle: viper.GetBool("S3_USE_PATH_STYLE"),
	}
	switch cfg.Storage.Backend {
	case StorageBackendLocal:
	case StorageBackendS3:
		if cfg.Storage.S3Bucket == "" {
			log.Println("Warning: STORAGE_BACKEND=s3 but S3_BUCKET is not set.")
		}
	default:
		log.Printf("Warning: Unknown STORAGE_BACKEND ('%s'). Defaulting to %s.\n", cfg.Storage.Backend, StorageBackendLocal)
		cfg.Storage.Backend = StorageBackendLocal
	}

	tzName := viper.GetString("INVOICE_TIMEZONE")
	location, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: Invalid INVOICE_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
		location = time.UTC
	}
	cfg.Invoice = InvoiceConfig{
		TemplateDir:  viper.GetString("TEMPLATE_DIR"),
		TemplateName: viper.GetString("INVOICE_TEMPLATE_NAME"),
		Location:     location,
		WordsLocale:  viper.GetString("INVOICE_WORDS_LOCALE"),
	}
	for _, key := range bankDetailKeys {
		if value := strings.TrimSpace(viper.GetString(key.env)); value != "" {
			cfg.Invoice.BankDetails = append(cfg.Invoice.BankDetails, key.label+": "+value)
		}
	}

	cfg.Limits = RateLimitConfig{
		Login: viper.GetString("LOGIN_RATE_LIMIT"),
		API:   viper.GetString("API_RATE_LIMIT"),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.Bootstrap = BootstrapConfig{
		Email:    viper.GetString("BOOTSTRAP_SUPERADMIN_EMAIL"),
		Password: viper.GetString("BOOTSTRAP_SUPERADMIN_PASSWORD"),
		Username: viper.GetString("BOOTSTRAP_SUPERADMIN_USERNAME"),
	}
	if cfg.Bootstrap.Email != "" && cfg.Bootstrap.Password == "" {
		log.Println("Warning: BOOTSTRAP_SUPERADMIN_EMAIL set without BOOTSTRAP_SUPERADMIN_PASSWORD. Bootstrap skipped.")
		cfg.Bootstrap.Email = ""
	}

	return cfg, nil
}
