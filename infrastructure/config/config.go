package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	IndexName     string // GSI1 - direct entity ID lookups
	EventBusName  string

	// Reminder scheduling
	ScheduleRulePrefix  string // namespaces EventBridge rules per deployment
	DispatchFunctionARN string
	DispatchRoleARN     string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// WebSocket push configuration
	WebSocketEndpoint string
	ConnectionsTable  string

	// Insight generation
	GenerationDelay time.Duration

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableTracing           bool
	EnableCORS              bool
	EnableHeuristicInsights bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "dreamvault"),
		IndexName:     getEnv("INDEX_NAME", "EntityIndex"), // GSI1
		EventBusName:  getEnv("EVENT_BUS_NAME", "dreamvault-events"),

		// Reminder scheduling
		ScheduleRulePrefix:  getEnv("SCHEDULE_RULE_PREFIX", "dreamvault-alarm"),
		DispatchFunctionARN: getEnv("DISPATCH_FUNCTION_ARN", ""),
		DispatchRoleARN:     getEnv("DISPATCH_ROLE_ARN", ""),

		// Lambda configuration
		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		// WebSocket push configuration
		WebSocketEndpoint: getEnv("WEBSOCKET_ENDPOINT", ""),
		ConnectionsTable:  getEnv("CONNECTIONS_TABLE", "dreamvault-connections"),

		// Insight generation
		GenerationDelay: time.Duration(getEnvInt("GENERATION_DELAY_MS", 1500)) * time.Millisecond,

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "dreamvault"),

		// Logging and features
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		EnableTracing:           getEnvBool("ENABLE_TRACING", false),
		EnableCORS:              getEnvBool("ENABLE_CORS", true),
		EnableHeuristicInsights: getEnvBool("ENABLE_HEURISTIC_INSIGHTS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
		if c.DispatchFunctionARN == "" {
			return fmt.Errorf("DISPATCH_FUNCTION_ARN is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
