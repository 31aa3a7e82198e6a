package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ConsoleDB serves the raw aggregate queries (dashboard feeds, detection options)
	ConsoleDB *pgxpool.Pool
	// ConsoleGorm serves every CRUD path
	ConsoleGorm *gorm.DB
)

func InitDB() {
	dsn := DatabaseURL()
	initPgx(dsn)
	initGORM(dsn)
}

// DatabaseURL prefers DATABASE_URL and falls back to the local DB_* defaults
func DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	log.Println("⚠️ DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "asadel_console"),
	)
}

func initPgx(dsn string) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("❌ Invalid database URL: %v", err)
	}
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	ConsoleDB, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("❌ Unable to connect to console database: %v", err)
	}

	if err = ConsoleDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Console database ping failed: %v", err)
	}

	log.Println("✅ Console database connected (pgx)")
}

func initGORM(dsn string) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	ConsoleGorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to console database with GORM: %v", err)
	}
	if sqlDB, err := ConsoleGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Console database connected (GORM)")
}

func CloseDB() {
	if ConsoleDB != nil {
		ConsoleDB.Close()
		log.Println("✅ Console database connection closed (pgx)")
	}

	if ConsoleGorm != nil {
		sqlDB, _ := ConsoleGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Console database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
