// internal/config/config.go
package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Sheets   SheetsConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Planning PlanningConfig
}

type ServerConfig struct {
	Port           string
	AdminPort      string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// SourceConfig selects where stores, SKUs and unit counts come from:
// "fixture", "sheets", "workbook" or "postgres".
type SourceConfig struct {
	Kind         string
	FixturePath  string
	WorkbookPath string
}

type SheetsConfig struct {
	SpreadsheetID   string
	APIKey          string
	CredentialsJSON string
	BaseURL         string
	StoresSheet     string
	SKUsSheet       string
	PlanningSheet   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

type PlanningConfig struct {
	Months           []string
	WeeksPerMonth    int
	FillMissingWeeks bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults(viper.GetViper())

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper(viper.GetViper())
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ADMIN_PORT", "8081")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

	v.SetDefault("SOURCE_KIND", "fixture")
	v.SetDefault("SOURCE_FIXTURE_PATH", "")
	v.SetDefault("SOURCE_WORKBOOK_PATH", "")

	v.SetDefault("SHEETS_SPREADSHEET_ID", "")
	v.SetDefault("SHEETS_API_KEY", "")
	v.SetDefault("SHEETS_CREDENTIALS_JSON", "")
	v.SetDefault("SHEETS_BASE_URL", "")
	v.SetDefault("SHEETS_STORES_SHEET", "Stores")
	v.SetDefault("SHEETS_SKUS_SHEET", "SKUs")
	v.SetDefault("SHEETS_PLANNING_SHEET", "Planning")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "planboard")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 60)

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "planboard-exports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_PREFIX", "exports/")

	v.SetDefault("PLANNING_MONTHS", []string{"Jan", "Feb", "Mar", "Apr"})
	v.SetDefault("PLANNING_WEEKS_PER_MONTH", 4)
	v.SetDefault("PLANNING_FILL_MISSING_WEEKS", false)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			AdminPort:      v.GetString("ADMIN_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Source: SourceConfig{
			Kind:         strings.ToLower(strings.TrimSpace(v.GetString("SOURCE_KIND"))),
			FixturePath:  v.GetString("SOURCE_FIXTURE_PATH"),
			WorkbookPath: v.GetString("SOURCE_WORKBOOK_PATH"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   v.GetString("SHEETS_SPREADSHEET_ID"),
			APIKey:          v.GetString("SHEETS_API_KEY"),
			CredentialsJSON: v.GetString("SHEETS_CREDENTIALS_JSON"),
			BaseURL:         v.GetString("SHEETS_BASE_URL"),
			StoresSheet:     v.GetString("SHEETS_STORES_SHEET"),
			SKUsSheet:       v.GetString("SHEETS_SKUS_SHEET"),
			PlanningSheet:   v.GetString("SHEETS_PLANNING_SHEET"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			RedisURL:      v.GetString("REDIS_URL"),
			RedisHost:     v.GetString("REDIS_HOST"),
			RedisPort:     v.GetString("REDIS_PORT"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			TTLSeconds:    v.GetInt("CACHE_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
		},
		Planning: PlanningConfig{
			Months:           splitList(v.GetStringSlice("PLANNING_MONTHS")),
			WeeksPerMonth:    v.GetInt("PLANNING_WEEKS_PER_MONTH"),
			FillMissingWeeks: v.GetBool("PLANNING_FILL_MISSING_WEEKS"),
		},
	}
}

// splitList flattens env values such as "Jan,Feb" that viper hands back as a
// single element.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
