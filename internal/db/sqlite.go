package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqliteBusyTimeoutMS = 5000

// OpenSQLite opens (creating if needed) the dosetrack database file and
// brings its schema up to date from the embedded migrations before
// returning the handle.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath)), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

// sqliteDSN enforces foreign keys and a busy timeout so concurrent dose
// confirmations queue on the write lock instead of failing immediately.
func sqliteDSN(dbPath string) string {
	return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", dbPath, sqliteBusyTimeoutMS)
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stderr, "dosetrack/db: ", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
