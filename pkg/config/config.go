package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port string
	Env  string
	// FirebaseCredentials is the service-account JSON, inline. When empty,
	// CredentialsFile is tried instead.
	FirebaseCredentials string
	CredentialsFile     string
	StorageBucket       string
	SessionSecret       string
}

// Load reads the environment, optionally seeded from a .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		CredentialsFile:     getEnv("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		SessionSecret:       getEnv("SESSION_SECRET", "team_me_super_secret"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
