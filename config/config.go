package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the process-wide settings read once at startup. It is passed
// to service constructors and never mutated afterwards.
type Config struct {
	Port             string
	ClientOrigin     string
	JWTSecret        string
	TokenExpiry      time.Duration
	AWSRegion        string
	DynamoDBEndpoint string // optional override, used for local and test stores
	S3Bucket         string
}

// Load builds a Config from environment variables, applying defaults where
// the variable is unset.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "*"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenExpiry:      getEnvDuration("JWT_EXPIRY_DAYS", 7),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		S3Bucket:         os.Getenv("S3_BUCKET_NAME"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallbackDays int) time.Duration {
	days := fallbackDays
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}
