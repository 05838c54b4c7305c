package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"

	"github.com/glebarez/sqlite"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config holds database connection settings
type Config struct {
	Type     string `yaml:"type"` // mysql/postgres/sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"` // mysql only
}

// Init opens the database connection and migrates the schema
func Init(config Config) error {
	var dialector gorm.Dialector

	switch config.Type {
	case "mysql":
		if err := ensureMySQLDatabase(config); err != nil {
			return fmt.Errorf("failed to ensure database exists: %w", err)
		}
		if config.Charset == "" {
			config.Charset = "utf8mb4"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			config.User, config.Password, config.Host, config.Port, config.Database, config.Charset)
		dialector = mysql.Open(dsn)
	case "postgres":
		if err := ensurePostgresDatabase(config); err != nil {
			return fmt.Errorf("failed to ensure database exists: %w", err)
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			config.Host, config.User, config.Password, config.Database, config.Port)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(config.Database)
	default:
		return fmt.Errorf("unsupported database type: %s", config.Type)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	if err := AutoMigrate(); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	log.Println("Database connected successfully")
	return nil
}

// ensureMySQLDatabase creates the MySQL database when it does not exist yet
func ensureMySQLDatabase(config Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/?charset=utf8mb4&parseTime=True&loc=Local",
		config.User, config.Password, config.Host, config.Port)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL server: %w", err)
	}
	defer db.Close()

	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping MySQL server: %w", err)
	}

	var exists int
	query := "SELECT 1 FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = db.QueryRow(query, config.Database).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	log.Printf("Database '%s' does not exist, creating...\n", config.Database)
	// CREATE DATABASE does not support parameter binding, escape the identifier instead
	createSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci",
		escapeMySQLIdentifier(config.Database))
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// escapeMySQLIdentifier escapes backticks inside a MySQL identifier
func escapeMySQLIdentifier(name string) string {
	escaped := ""
	for _, r := range name {
		if r == '`' {
			escaped += "``"
		} else {
			escaped += string(r)
		}
	}
	return escaped
}

// ensurePostgresDatabase creates the PostgreSQL database when it does not exist yet
func ensurePostgresDatabase(config Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%d sslmode=disable",
		config.Host, config.User, config.Password, config.Port)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer db.Close()

	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL server: %w", err)
	}

	var exists int
	query := "SELECT 1 FROM pg_database WHERE datname = $1"
	err = db.QueryRow(query, config.Database).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	log.Printf("Database '%s' does not exist, creating...\n", config.Database)
	createSQL := fmt.Sprintf("CREATE DATABASE %s", quotePostgresIdentifier(config.Database))
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// quotePostgresIdentifier quotes and escapes a PostgreSQL identifier
func quotePostgresIdentifier(name string) string {
	escaped := ""
	for _, r := range name {
		if r == '"' {
			escaped += `""`
		} else {
			escaped += string(r)
		}
	}
	return fmt.Sprintf(`"%s"`, escaped)
}

// AutoMigrate migrates all application tables
func AutoMigrate() error {
	return DB.AutoMigrate(
		&model.User{},
		&model.VideoLink{},
		&model.DeliveryBot{},
		&model.PlatformAssignment{},
	)
}

// Close closes the underlying connection pool
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
