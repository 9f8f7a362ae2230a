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
	// Pool is the raw pgx pool, used by the seeder and anything that
	// needs batch inserts without the ORM in the way.
	Pool *pgxpool.Pool

	// Gorm is the primary handle for application queries.
	Gorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
}

func initPgx() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// fallback to local
		dbURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/vastrika?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ DATABASE_URL not set, using local default")
	}

	var err error
	Pool, err = pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to database: %v", err)
	}

	if err = Pool.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}

	log.Println("✅ Database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var dsn string
	if os.Getenv("DATABASE_URL") != "" {
		dsn = os.Getenv("DATABASE_URL")
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=vastrika port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ DATABASE_URL not set, using local GORM default")
	}

	var err error
	Gorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database with GORM: %v", err)
	}
	if sqlDB, err := Gorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Database connected (GORM)")
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		log.Println("✅ Database connection closed (pgx)")
	}
	if Gorm != nil {
		sqlDB, _ := Gorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
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
