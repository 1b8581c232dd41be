package models

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trimeca/inventory/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBMode identifies which backend the process ended up connected to. It is
// surfaced on the health endpoint for diagnostics only; nothing branches on it.
type DBMode string

const (
	DBModePostgres DBMode = "postgres"
	DBModeSQLite   DBMode = "sqlite"
)

// InitDB connects to the primary Postgres database. If the connection cannot
// be established within the configured timeout it falls back to the local
// SQLite file so the application keeps working offline.
func InitDB(cfg *config.Config) (*gorm.DB, DBMode, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	if cfg.Env == "production" {
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	}

	db, err := openPostgres(cfg, gormConfig)
	if err == nil {
		log.Println("Database connection established (postgres)")
		return db, DBModePostgres, nil
	}

	log.Printf("WARN: primary database unreachable (%v), falling back to SQLite at %s", err, cfg.SQLitePath)

	db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open fallback database: %w", err)
	}

	log.Println("Database connection established (sqlite fallback)")
	return db, DBModeSQLite, nil
}

func openPostgres(cfg *config.Config, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		int(cfg.DBConnectTimeout.Seconds()))

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// gorm.Open can succeed lazily; an explicit ping proves connectivity
	// before we commit to this backend.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// InitRedis initializes the Redis connection used by the rate limiter.
func InitRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	log.Println("Redis connection established")
	return client
}

// Migrate runs database migrations. AutoMigrate is idempotent: running it on
// an already-migrated schema creates nothing and returns no error.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Asset{},
		&Location{},
		&Attachment{},
		&TransferRecord{},
		&DeletionRecord{},
	)
}
