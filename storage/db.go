package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store manages persistence using GORM over sqlite.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store around an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InitDB opens the sqlite database and verifies connectivity.
// TranslateError is required: the insert paths rely on unique-constraint
// violations surfacing as gorm.ErrDuplicatedKey.
func InitDB(dbPath string) (*gorm.DB, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
