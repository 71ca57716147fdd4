package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Google struct {
	ClientID     string
	ClientSecret string
}

type Razorpay struct {
	KeyID          string
	KeySecret      string
	BaseURL        string
	AmountInRupees float64
}

type Config struct {
	ServerPort  int
	Environment string
	FrontendURL string
	BackendURL  string

	DB       DB
	MinIO    MinIO
	Google   Google
	Razorpay Razorpay

	// Three independent signing secrets: a leaked admin secret must not
	// be usable to forge user tokens, and vice versa.
	JWTSecret        string
	AdminJWTSecret   string
	JWTRefreshSecret string

	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	PremiumDuration      time.Duration
	PremiumCharLimit     int
	MaxUploadSize        int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "noteexchange"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "avatars"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:  getEnvAsInt("SERVER_PORT", 5000),
		Environment: getEnv("APP_ENV", "production"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:5000"),
		DB:          LoadDB(),
		MinIO:       LoadMinIO(),
		Google: Google{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Razorpay: Razorpay{
			KeyID:          getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:      getEnv("RAZORPAY_KEY_SECRET", ""),
			BaseURL:        getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
			AmountInRupees: getEnvAsFloat("RAZORPAY_AMOUNT_IN_RUPEES", 1000),
		},
		JWTSecret:            getEnv("JWT_SECRET", ""),
		AdminJWTSecret:       getEnv("ADMIN_JWT_SECRET", ""),
		JWTRefreshSecret:     getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "24h"), 24*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		PremiumDuration:      parseDuration(getEnv("PREMIUM_DURATION", "720h"), 720*time.Hour),
		PremiumCharLimit:     getEnvAsInt("PREMIUM_CHAR_LIMIT", 200),
		MaxUploadSize:        int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
	}
}

// IsDevelopment reports whether verbose error detail may be returned to
// clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
