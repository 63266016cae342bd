package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hr-selfservice/internal/pkg/dateutil"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Supported storage drivers
const (
	DriverMySQL   = "mysql"
	DriverSQLite  = "sqlite"
	DriverMongoDB = "mongodb"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Timezone   string
	LogLevel   string
	RosterFile string
	Database   DatabaseConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Mail       MailConfig
	Reminder   ReminderConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver        string
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
}

// JWTConfig holds admin token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// AdminConfig holds the seeded admin account
type AdminConfig struct {
	Username string
	Password string
}

// MailConfig holds SMTP settings and the fixed HR mailboxes
type MailConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	AdminEmail   string
	ManagerEmail string
}

// Enabled reports whether SMTP delivery is configured
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.User != ""
}

// ReminderConfig holds the vacation reminder job settings
type ReminderConfig struct {
	Enabled    bool
	Schedule   string
	CronSecret string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "5000"),
		Timezone:   getEnv("APP_TIMEZONE", "Local"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		RosterFile: getEnv("ROSTER_FILE", ""),
		Database:   loadDatabaseConfig(appMode),
		JWT:        loadJWTConfig(appMode),
		Admin:      loadAdminConfig(),
		Mail:       loadMailConfig(),
		Reminder:   loadReminderConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	logrus.WithField("mode", appMode).Info("✅ Configuration loaded successfully")
	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite, DriverMongoDB:
	default:
		return fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, sqlite or mongodb)", c.Database.Driver)
	}

	if _, err := dateutil.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	if c.IsProd() && c.JWT.Secret == "default_secret" {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		Host:          getEnv(prefix+"DB_HOST", "localhost"),
		Port:          getEnv(prefix+"DB_PORT", "3306"),
		User:          getEnv(prefix+"DB_USER", "root"),
		Password:      getEnv(prefix+"DB_PASS", ""),
		DBName:        getEnv(prefix+"DB_NAME", "hr_selfservice"),
		SQLitePath:    getEnv("SQLITE_PATH", "hr_selfservice.db"),
		MongoURI:      getEnv(prefix+"MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv(prefix+"MONGODB_DATABASE", "hr_selfservice"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 480),
	}
}

func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
}

func loadMailConfig() MailConfig {
	user := getEnv("SMTP_USER", "")
	return MailConfig{
		Host:         getEnv("SMTP_HOST", ""),
		Port:         getEnvInt("SMTP_PORT", 587),
		User:         user,
		Password:     getEnv("SMTP_PASS", ""),
		From:         getEnv("MAIL_FROM", user),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		ManagerEmail: getEnv("MANAGER_EMAIL", ""),
	}
}

func loadReminderConfig() ReminderConfig {
	enabled, _ := strconv.ParseBool(getEnv("REMINDER_ENABLED", "true"))
	return ReminderConfig{
		Enabled:    enabled,
		Schedule:   getEnv("REMINDER_CRON", "30 8 * * *"),
		CronSecret: getEnv("CRON_SECRET", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Location returns the organization's time zone
func (c *Config) Location() *time.Location {
	loc, err := dateutil.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
