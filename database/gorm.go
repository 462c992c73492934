package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/studyshelf/catalog-api/config"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM opens the catalog store. The default driver is an embedded
// SQLite file; DB_DRIVER=postgres selects a shared PostgreSQL backend.
// Failure to open is reported as ErrStoreUnavailable so callers can tell
// it apart from an empty store.
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	gormConfig := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var db *gorm.DB
	switch getEnv.DB_DRIVER {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			getEnv.DB_HOST,
			getEnv.DB_USER_NAME,
			getEnv.DB_PASSWORD,
			getEnv.DB_NAME,
			getEnv.DB_PORT,
			getEnv.DB_SSL_MODE,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		if dir := filepath.Dir(getEnv.DB_PATH); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(getEnv.DB_PATH), gormConfig)
	}
	if err != nil {
		log.Println("Unable to open catalog store:", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Connection pool settings; the sqlite store is a single logical writer
	if getEnv.DB_DRIVER == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully opened catalog store (%s).", getEnv.DB_DRIVER)

	return &GORMStore{db: db}, nil
}

// Init runs AutoMigrate for all collections. Migration is additive only:
// missing tables and indexes are created, existing records are never
// dropped, so reopening with a newer schema keeps old data intact.
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.Subject{},
		&model.File{},
		&model.User{},
		&model.Statistics{},
	)

	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing catalog store...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM DB instance for use in services/handlers
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
