package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   database.Config  `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Extractor  ExtractorConfig  `yaml:"extractor"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Downloader DownloaderConfig `yaml:"downloader"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Mode        string `yaml:"mode"` // debug/release
	CORSOrigins string `yaml:"cors_origins"`
}

// RedisConfig holds metadata-cache settings
type RedisConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	MetadataTTLHours int    `yaml:"metadata_ttl_hours"`
}

// ExtractorConfig holds extraction-service settings
type ExtractorConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // seconds
}

// TelegramConfig holds delivery-provider settings
type TelegramConfig struct {
	APIEndpoint string `yaml:"api_endpoint"` // override for self-hosted Bot API servers
	ChatID      int64  `yaml:"chat_id"`      // target chat for uploads
	Timeout     int    `yaml:"timeout"`      // seconds
}

// DownloaderConfig holds materialization settings
type DownloaderConfig struct {
	Dir         string `yaml:"dir"`
	MaxFileSize int64  `yaml:"max_file_size"` // bytes, delivery provider upload cap
	Timeout     int    `yaml:"timeout"`       // seconds
}

// SchedulerConfig holds the pending-link sweep settings
type SchedulerConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
	BatchSize       int  `yaml:"batch_size"`
}

var AppConfig *Config

// Load reads the yaml config file and applies environment overrides
func Load(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		AppConfig = &Config{}
		if err := yaml.Unmarshal(data, AppConfig); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		AppConfig = &Config{}
	}

	// Environment variables override values from the config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if port := viper.GetInt("SERVER_PORT"); port > 0 {
		AppConfig.Server.Port = port
	}
	if mode := viper.GetString("SERVER_MODE"); mode != "" {
		AppConfig.Server.Mode = mode
	}
	if corsOrigins := viper.GetString("SERVER_CORS_ORIGINS"); corsOrigins != "" {
		AppConfig.Server.CORSOrigins = corsOrigins
	}

	if dbType := viper.GetString("DATABASE_TYPE"); dbType != "" {
		AppConfig.Database.Type = dbType
	}
	if dbHost := viper.GetString("DATABASE_HOST"); dbHost != "" {
		AppConfig.Database.Host = dbHost
	}
	if dbPort := viper.GetInt("DATABASE_PORT"); dbPort > 0 {
		AppConfig.Database.Port = dbPort
	}
	if dbUser := viper.GetString("DATABASE_USER"); dbUser != "" {
		AppConfig.Database.User = dbUser
	}
	if dbPassword := viper.GetString("DATABASE_PASSWORD"); dbPassword != "" {
		AppConfig.Database.Password = dbPassword
	}
	if dbDatabase := viper.GetString("DATABASE_DATABASE"); dbDatabase != "" {
		AppConfig.Database.Database = dbDatabase
	}
	if dbCharset := viper.GetString("DATABASE_CHARSET"); dbCharset != "" {
		AppConfig.Database.Charset = dbCharset
	}

	if enabled := viper.GetBool("REDIS_ENABLED"); enabled {
		AppConfig.Redis.Enabled = enabled
	}
	if redisHost := viper.GetString("REDIS_HOST"); redisHost != "" {
		AppConfig.Redis.Host = redisHost
	}
	if redisPort := viper.GetInt("REDIS_PORT"); redisPort > 0 {
		AppConfig.Redis.Port = redisPort
	}
	if redisUsername := viper.GetString("REDIS_USERNAME"); redisUsername != "" {
		AppConfig.Redis.Username = redisUsername
	}
	if redisPassword := viper.GetString("REDIS_PASSWORD"); redisPassword != "" {
		AppConfig.Redis.Password = redisPassword
	}
	if metadataTTL := viper.GetInt("REDIS_METADATA_TTL_HOURS"); metadataTTL > 0 {
		AppConfig.Redis.MetadataTTLHours = metadataTTL
	}

	if baseURL := viper.GetString("EXTRACTOR_BASE_URL"); baseURL != "" {
		AppConfig.Extractor.BaseURL = baseURL
	}
	if apiKey := viper.GetString("LEECH_API_KEY"); apiKey != "" {
		AppConfig.Extractor.APIKey = apiKey
	}
	if timeout := viper.GetInt("EXTRACTOR_TIMEOUT"); timeout > 0 {
		AppConfig.Extractor.Timeout = timeout
	}

	if endpoint := viper.GetString("TELEGRAM_API_ENDPOINT"); endpoint != "" {
		AppConfig.Telegram.APIEndpoint = endpoint
	}
	if chatID := viper.GetInt64("TELEGRAM_CHAT_ID"); chatID != 0 {
		AppConfig.Telegram.ChatID = chatID
	}
	if timeout := viper.GetInt("TELEGRAM_TIMEOUT"); timeout > 0 {
		AppConfig.Telegram.Timeout = timeout
	}

	if dir := viper.GetString("DOWNLOADER_DIR"); dir != "" {
		AppConfig.Downloader.Dir = dir
	}
	if maxSize := viper.GetInt64("DOWNLOADER_MAX_FILE_SIZE"); maxSize > 0 {
		AppConfig.Downloader.MaxFileSize = maxSize
	}
	if timeout := viper.GetInt("DOWNLOADER_TIMEOUT"); timeout > 0 {
		AppConfig.Downloader.Timeout = timeout
	}

	if enabled := viper.GetBool("SCHEDULER_ENABLED"); enabled {
		AppConfig.Scheduler.Enabled = enabled
	}
	if interval := viper.GetInt("SCHEDULER_INTERVAL_SECONDS"); interval > 0 {
		AppConfig.Scheduler.IntervalSeconds = interval
	}
	if batch := viper.GetInt("SCHEDULER_BATCH_SIZE"); batch > 0 {
		AppConfig.Scheduler.BatchSize = batch
	}

	applyDefaults(AppConfig)
	return nil
}

// applyDefaults fills in remaining empty values
func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Database == "" {
		c.Database.Database = "tele_vid_downloader.db"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.MetadataTTLHours == 0 {
		c.Redis.MetadataTTLHours = 24
	}
	if c.Extractor.BaseURL == "" {
		c.Extractor.BaseURL = "https://globals.zapps.cloud/api/leech"
	}
	if c.Extractor.Timeout == 0 {
		c.Extractor.Timeout = 30
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 30
	}
	if c.Downloader.Dir == "" {
		c.Downloader.Dir = "downloads"
	}
	if c.Downloader.MaxFileSize == 0 {
		c.Downloader.MaxFileSize = 50 * 1024 * 1024 // Telegram bot upload cap
	}
	if c.Downloader.Timeout == 0 {
		c.Downloader.Timeout = 120
	}
	if c.Scheduler.IntervalSeconds == 0 {
		c.Scheduler.IntervalSeconds = 30
	}
	if c.Scheduler.BatchSize == 0 {
		c.Scheduler.BatchSize = 10
	}
}
