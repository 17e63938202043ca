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

type DB struct {
	DbHOST       string
	DbPORT       string
	DbUSER       string
	DbPASSWORD   string
	DbNAME       string
	DbSSLMODE    string
	DbMIGRATIONS string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Blob is the hosted blob-storage HTTP API. An empty Token disables it.
type Blob struct {
	Token       string
	Prefix      string
	AccessLevel string
	APIURL      string
}

type Uploads struct {
	Dir            string
	PublicPrefix   string
	MaxFileSize    int64
	MaxPreviewSize int64
	// Ephemeral is set on hosts whose local filesystem does not survive a deploy.
	Ephemeral bool
}

type Session struct {
	MemberSecret string
	StaffSecret  string
	Duration     time.Duration
}

type RateLimit struct {
	PerSecond float64
	Burst     int
}

type Config struct {
	ServerPort     int
	AppEnv         string
	DB             DB
	MinIO          MinIO
	Blob           Blob
	Uploads        Uploads
	Session        Session
	LoginRateLimit RateLimit
	AllowedOrigins []string
	MembershipFee  int
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:       getEnv("DB_HOST", "localhost"),
		DbPORT:       getEnv("DB_PORT", "5432"),
		DbUSER:       getEnv("DB_USER", "postgres"),
		DbPASSWORD:   getEnv("DB_PASSWORD", "password"),
		DbNAME:       getEnv("DB_NAME", "pns_membership"),
		DbSSLMODE:    getEnv("DB_SSLMODE", "disable"),
		DbMIGRATIONS: getEnv("DB_MIGRATIONS", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadBlob() Blob {
	access := "public"
	if getEnv("BLOB_ACCESS_LEVEL", "") == "private" {
		access = "private"
	}

	return Blob{
		Token:       getEnv("BLOB_READ_WRITE_TOKEN", ""),
		Prefix:      getEnv("BLOB_UPLOAD_PREFIX", "pns-membership"),
		AccessLevel: access,
		APIURL:      strings.TrimSuffix(getEnv("BLOB_API_URL", "https://blob.vercel-storage.com"), "/"),
	}
}

func LoadUploads() Uploads {
	return Uploads{
		Dir:            getEnv("UPLOAD_DIR", "public/uploads"),
		PublicPrefix:   strings.TrimSuffix(getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads"), "/"),
		MaxFileSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		MaxPreviewSize: getEnvAsInt64("MAX_PREVIEW_SIZE", 20*1024*1024),
		Ephemeral:      getEnv("VERCEL", "") != "",
	}
}

func LoadSession() Session {
	memberSecret := getEnv("JWT_SECRET_KEY", "")
	staffSecret := getEnv("ADMIN_JWT_SECRET_KEY", "")
	if staffSecret == "" && memberSecret != "" {
		// staff tokens must never verify with the member key
		staffSecret = memberSecret + ":staff"
	}

	return Session{
		MemberSecret: memberSecret,
		StaffSecret:  staffSecret,
		Duration:     parseDuration(getEnv("SESSION_DURATION", "168h"), 7*24*time.Hour),
	}
}

// LoadAllowedOrigins collects CORS origins from every variable that may name the site.
func LoadAllowedOrigins() []string {
	raw := []string{
		getEnv("CORS_ALLOW_ORIGIN", ""),
		getEnv("APP_URL", ""),
		getEnv("SITE_URL", ""),
	}
	if vercelURL := getEnv("VERCEL_URL", ""); vercelURL != "" {
		raw = append(raw, "https://"+vercelURL)
	}

	var origins []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	return origins
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		AppEnv:     getEnv("APP_ENV", "development"),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		Blob:       LoadBlob(),
		Uploads:    LoadUploads(),
		Session:    LoadSession(),
		LoginRateLimit: RateLimit{
			PerSecond: getEnvAsFloat("LOGIN_RATE_LIMIT", 1),
			Burst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		AllowedOrigins: LoadAllowedOrigins(),
		MembershipFee:  getEnvAsInt("MEMBERSHIP_FEE", 1020),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Session.MemberSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is not set")
	}
	if c.Session.MemberSecret == c.Session.StaffSecret {
		return fmt.Errorf("ADMIN_JWT_SECRET_KEY must differ from JWT_SECRET_KEY")
	}
	return nil
}

// AdminSeed is the bootstrap ADMIN account written by cmd/seed.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Title    string
}

func LoadAdminSeed() AdminSeed {
	return AdminSeed{
		Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		Password: getEnv("ADMIN_PASSWORD", "ChangeMe123!"),
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Phone:    getEnv("ADMIN_PHONE", "0000000000"),
		Title:    getEnv("ADMIN_TITLE", "Admin"),
	}
}
