package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	SteamApiKey string
	SteamApiUrl string

	// Steam IDs with trader/admin privileges. Comma separated in env.
	TraderSteamIDs []string

	AppBaseUrl string

	SessionTTLHours int

	// Delay before the scripted trader reply lands in a user chat.
	ChatReplyDelayMs int

	EmailSender  string
	Password     string // SMTP Password
	SupportInbox string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		SteamApiKey: getEnv("STEAM_API_KEY", ""),
		SteamApiUrl: getEnv("STEAM_API_URL", "https://api.steampowered.com"),

		TraderSteamIDs: getEnvList("TRADER_STEAM_IDS", []string{
			"76561198012345678",
			"76561198087654321",
		}),

		AppBaseUrl: getEnv("APP_BASE_URL", "http://localhost:3000"),

		SessionTTLHours:  getEnvInt("SESSION_TTL_HOURS", 24),
		ChatReplyDelayMs: getEnvInt("CHAT_REPLY_DELAY_MS", 1000),

		EmailSender:  getEnv("EMAIL_SENDER", ""),
		Password:     getEnv("PASSWORD", ""),
		SupportInbox: getEnv("SUPPORT_INBOX", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SteamApiKey == "" {
		log.Println("Warning: STEAM_API_KEY is not set. Steam sign-in will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvList retrieves a comma separated environment variable or returns the default list
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
