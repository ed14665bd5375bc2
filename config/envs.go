package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string // Host IP for the server
	RESTPort      int    // Port for the REST API and websocket endpoint
	RedisHost     string // Hostname or IP address for Redis
	RedisPort     int    // Port number for Redis
	RedisPassword string // Password for Redis, empty when unauthenticated
	GameStore     string // Which store backs game persistence ("redis" or "mongo")
	DBHost        string // Hostname or IP address for MongoDB
	DBPort        int    // Port number for MongoDB
	DBUser        string // Username for MongoDB
	DBPassword    string // Password for MongoDB
	DBName        string // Name of the MongoDB database
	BoardRows     int    // Number of rows on a fresh board
	BoardColumns  int    // Number of columns on a fresh board
	MinePercent   int    // Percentage of tiles that become mines on the first move
	GinMode       string // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel      string // Minimum log level (e.g., debug, info, warn)
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:        mustGetEnv("HOST_IP"),
		RESTPort:      mustGetEnvAsInt("REST_PORT"),
		RedisHost:     mustGetEnv("REDIS_HOST"),
		RedisPort:     mustGetEnvAsInt("REDIS_PORT"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		GameStore:     getEnvWithDefault("GAME_STORE", "redis"),
		DBHost:        getEnvWithDefault("DB_HOST", ""),
		DBPort:        getEnvAsIntWithDefault("DB_PORT", 0),
		DBUser:        getEnvWithDefault("DB_USER", ""),
		DBPassword:    getEnvWithDefault("DB_PASS", ""),
		DBName:        getEnvWithDefault("DB_NAME", ""),
		BoardRows:     getEnvAsIntWithDefault("BOARD_ROWS", 10),
		BoardColumns:  getEnvAsIntWithDefault("BOARD_COLUMNS", 15),
		MinePercent:   getEnvAsIntWithDefault("MINE_PERCENT", 18),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
