package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type OTP struct {
	Digits        int
	Window        time.Duration
	ResendLockout time.Duration
}

type Config struct {
	BaseAPIURL     string
	RequestTimeout time.Duration
	MaxUploadSize  int64
	OTP            OTP
	Debug          bool
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

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadOTP() OTP {
	return OTP{
		Digits:        getEnvAsInt("OTP_DIGITS", 6),
		Window:        parseDuration(getEnv("OTP_WINDOW", "5m"), 5*time.Minute),
		ResendLockout: parseDuration(getEnv("OTP_RESEND_LOCKOUT", "1m"), time.Minute),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		BaseAPIURL:     getEnv("BASE_API_URL", "http://localhost:8000/api/v1"),
		RequestTimeout: parseDuration(getEnv("REQUEST_TIMEOUT", "30s"), 30*time.Second),
		MaxUploadSize:  parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
		OTP:            LoadOTP(),
		Debug:          getEnvBool("DEBUG", false),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 5 * 1024 * 1024
	}
	return size
}
