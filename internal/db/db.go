package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"volunteerhub/internal/config"
	"volunteerhub/internal/model"
)

// Open returns a connected GORM DB instance for the configured driver.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         NewLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Dialector{DriverName: "sqlite", DSN: SQLiteDSN(cfg.DSN)}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// SQLiteDSN turns on foreign key enforcement for a sqlite path.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates the schema. With reset set, every table is
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	models := model.All()
	if reset {
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Str("component", "gorm").Msgf(format, args...)
}

// NewLogger routes gorm's SQL logging through zerolog.
func NewLogger(log zerolog.Logger) logger.Interface {
	level := logger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return logger.New(zerologWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
