package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/memoapi/internal/config"
)

// sqliteDriverName is the database/sql name registered by modernc.org/sqlite
const sqliteDriverName = "sqlite"

// DB wraps the gorm connection pool shared by every request
type DB struct {
	*gorm.DB
	driver string
}

// Open establishes the pooled connection for the configured driver
func Open(cfg config.DatabaseConfig, logger gormlogger.Interface) (*DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY under load
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{DB: gormDB, driver: cfg.Driver}

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return db, nil
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, err
		}
		return &sqlite.Dialector{
			DriverName: sqliteDriverName,
			DSN:        cfg.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Driver returns the configured driver name
func (db *DB) Driver() string {
	return db.driver
}

// SQL returns the underlying database/sql pool
func (db *DB) SQL() (*sql.DB, error) {
	return db.DB.DB()
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (db *DB) Close() error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
