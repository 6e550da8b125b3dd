package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	ObjectStoreCloudinary = "cloudinary"
	ObjectStoreGCS        = "gcs"
	ObjectStoreLocal      = "local"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Storage
	DatabaseDriver           string
	MongoURI                 string
	MongoDatabase            string
	DBServerSelectionTimeout time.Duration
	DatabaseURL              string
	MigrationsPath           string

	// Tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// HTTP boundary
	ClientURL       string
	RateLimitWindow time.Duration
	RateLimitMax    int64

	// Object storage
	ObjectStoreDriver   string
	ObjectStoreFolder   string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	GCSBucket           string
	GCSCredentialsFile  string
	LocalUploadDir      string
	LocalUploadBaseURL  string

	// Uploads
	UploadMaxFileSize     int64
	UploadMaxFiles        int
	UploadAllowedMIMEType []string

	ReportingLocation *time.Location

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_DRIVER", DriverMongo)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "finance_tracker")
	viper.SetDefault("DB_SERVER_SELECTION_TIMEOUT", "5s")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "finance-tracker")
	viper.SetDefault("CLIENT_URL", "*")
	viper.SetDefault("RATE_LIMIT_WINDOW", "15m")
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("OBJECT_STORE_DRIVER", ObjectStoreCloudinary)
	viper.SetDefault("OBJECT_STORE_FOLDER", "transactions")
	viper.SetDefault("LOCAL_UPLOAD_DIR", "uploads")
	viper.SetDefault("LOCAL_UPLOAD_BASE_URL", "/uploads")
	viper.SetDefault("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)
	viper.SetDefault("UPLOAD_MAX_FILES", 5)
	viper.SetDefault("UPLOAD_ALLOWED_TYPES", "image/jpeg,image/png,application/pdf")
	viper.SetDefault("REPORTING_TIMEZONE", "UTC")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		DatabaseDriver:      strings.ToLower(viper.GetString("DATABASE_DRIVER")),
		MongoURI:            viper.GetString("MONGO_URI"),
		MongoDatabase:       viper.GetString("MONGO_DATABASE"),
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		MigrationsPath:      viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTIssuer:           viper.GetString("JWT_ISSUER"),
		ClientURL:           viper.GetString("CLIENT_URL"),
		RateLimitMax:        viper.GetInt64("RATE_LIMIT_MAX"),
		ObjectStoreDriver:   strings.ToLower(viper.GetString("OBJECT_STORE_DRIVER")),
		ObjectStoreFolder:   viper.GetString("OBJECT_STORE_FOLDER"),
		CloudinaryCloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    viper.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		GCSBucket:           viper.GetString("GCS_BUCKET"),
		GCSCredentialsFile:  viper.GetString("GCS_CREDENTIALS_FILE"),
		LocalUploadDir:      viper.GetString("LOCAL_UPLOAD_DIR"),
		LocalUploadBaseURL:  viper.GetString("LOCAL_UPLOAD_BASE_URL"),
		UploadMaxFileSize:   viper.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		UploadMaxFiles:      viper.GetInt("UPLOAD_MAX_FILES"),
		PosthogAPIKey:       viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.DBServerSelectionTimeout = durationOrDefault("DB_SERVER_SELECTION_TIMEOUT", 5*time.Second)
	cfg.RateLimitWindow = durationOrDefault("RATE_LIMIT_WINDOW", 15*time.Minute)

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 100
		log.Printf("Warning: Invalid RATE_LIMIT_MAX. Defaulting to %d.\n", cfg.RateLimitMax)
	}

	switch cfg.DatabaseDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			log.Println("Warning: MONGO_URI environment variable not set.")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	default:
		log.Printf("Warning: Unknown DATABASE_DRIVER ('%s'). Defaulting to %s.\n", cfg.DatabaseDriver, DriverMongo)
		cfg.DatabaseDriver = DriverMongo
	}

	switch cfg.ObjectStoreDriver {
	case ObjectStoreCloudinary:
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			log.Println("Warning: CLOUDINARY_* credentials not set. Attachment uploads will fail.")
		}
	case ObjectStoreGCS:
		if cfg.GCSBucket == "" {
			log.Println("Warning: GCS_BUCKET not set. Attachment uploads will fail.")
		}
	case ObjectStoreLocal:
	default:
		log.Printf("Warning: Unknown OBJECT_STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.ObjectStoreDriver, ObjectStoreLocal)
		cfg.ObjectStoreDriver = ObjectStoreLocal
	}

	if cfg.UploadMaxFileSize <= 0 {
		cfg.UploadMaxFileSize = 5 * 1024 * 1024
	}
	if cfg.UploadMaxFiles <= 0 {
		cfg.UploadMaxFiles = 5
	}
	for _, t := range strings.Split(viper.GetString("UPLOAD_ALLOWED_TYPES"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			cfg.UploadAllowedMIMEType = append(cfg.UploadAllowedMIMEType, t)
		}
	}

	tz := viper.GetString("REPORTING_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid REPORTING_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.ReportingLocation = loc

	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Analytics disabled.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
