package config

import (
	"os"
	"strconv"
	"time"
)

// Config アプリケーション設定
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	LocalDB LocalDBConfig
	CloudDB CloudDBConfig
	S3      S3Config
	Auth    AuthConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port string
}

// LogConfig ログ設定
type LogConfig struct {
	Level          string
	Directory      string
	UploadEnabled  bool
	UploadMaxAge   time.Duration
	UploadInterval time.Duration
}

// LocalDBConfig ローカルストア設定
type LocalDBConfig struct {
	Path string
}

// CloudDBConfig クラウドストア設定。Hostが空の場合はクラウドストアを使わない
type CloudDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// S3Config S3設定
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// LoadConfig 環境変数から設定を読み込み
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			Directory:      getEnv("LOG_DIRECTORY", "logs"),
			UploadEnabled:  getBoolEnv("LOG_UPLOAD_ENABLED", false),
			UploadMaxAge:   getDurationEnv("LOG_UPLOAD_MAX_AGE", 24*time.Hour),
			UploadInterval: getDurationEnv("LOG_UPLOAD_INTERVAL", 1*time.Hour),
		},
		LocalDB: LocalDBConfig{
			Path: getEnv("LOCAL_DB_PATH", ""),
		},
		CloudDB: CloudDBConfig{
			Host:     getEnv("CLOUD_DB_HOST", ""),
			Port:     getEnv("CLOUD_DB_PORT", "5432"),
			User:     getEnv("CLOUD_DB_USER", "taskman"),
			Password: getEnv("CLOUD_DB_PASSWORD", ""),
			DBName:   getEnv("CLOUD_DB_NAME", "taskman"),
			SSLMode:  getEnv("CLOUD_DB_SSLMODE", "disable"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"), // MinIO用のデフォルト
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "taskman-files"),
			UseSSL:          getBoolEnv("S3_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "development-secret"),
			AccessTokenExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
	}
}

// CloudEnabled クラウドストアが設定されているかどうか
func (c *Config) CloudEnabled() bool {
	return c.CloudDB.Host != ""
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv 環境変数をboolで取得
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv 環境変数をtime.Durationで取得
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
