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
	PublicURL  string
}

// Redis is optional: with an empty Addr the page cache lives in process memory.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	ServerPort      int
	DB              DB
	MinIO           MinIO
	Redis           Redis
	JWTSecretKey    string
	SessionDuration time.Duration
	MaxUploadSize   int64
	PostsPerPage    int
	IndexCacheTTL   time.Duration
	LoginURL        string
	LogLevel        string
	LogFormat       string
	MigrationsPath  string
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "yatube"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	bucket := getEnv("MINIO_BUCKET_NAME", "media")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: bucket,
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+"://"+endpoint+"/"+bucket),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		DB:              LoadDB(),
		MinIO:           LoadMinIO(),
		Redis:           LoadRedis(),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		SessionDuration: getEnvAsDuration("SESSION_DURATION", 14*24*time.Hour),
		MaxUploadSize:   parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		PostsPerPage:    getEnvAsInt("POSTS_PER_PAGE", 10),
		IndexCacheTTL:   getEnvAsDuration("INDEX_CACHE_TTL", 20*time.Second),
		LoginURL:        getEnv("LOGIN_URL", "/auth/login/"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", ""),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
