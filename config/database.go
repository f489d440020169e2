package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure-Go driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg AppConfig) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.DatabaseURI}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// GormConfig builds the gorm settings shared by every driver. w receives gorm's
// own log lines; nil silences them.
func GormConfig(level string, w logger.Writer) *gorm.Config {
	gLogger := logger.Discard
	if w != nil {
		gLogger = logger.New(w, logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
	}
	return &gorm.Config{
		Logger: gLogger,
		// every write is a single statement
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// OpenDatabase connects using cfg and verifies the connection.
func OpenDatabase(cfg AppConfig, w logger.Writer) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.LogLevel, w))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.DBDriver == DriverSQLite {
		// one writer at a time; also keeps in-memory databases alive on a single connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// mysqlTableOptions makes text comparisons and unique indexes on MySQL exact:
// utf8mb4_bin neither folds case nor ignores accents.
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// migrationSession attaches the dialect specific CREATE TABLE options.
func migrationSession(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == DriverMySQL {
		return db.Set("gorm:table_options", mysqlTableOptions)
	}
	return db
}

// Migrate creates the tables for models that do not exist yet. Existing tables
// are left untouched; schema changes beyond the initial one are out of scope.
func Migrate(db *gorm.DB, models ...interface{}) error {
	db = migrationSession(db)
	for _, model := range models {
		if db.Migrator().HasTable(model) {
			continue
		}
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("auto migration failed for %T: %w", model, err)
		}
	}
	return nil
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "info", "", "warn":
		// Suppress per-statement logs; keep warnings (including slow SQL)
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
