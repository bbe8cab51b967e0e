package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dailydiet/internal/model"
)

// Options tunes the underlying connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewMySQL returns a connected GORM DB instance that logs through log.
func NewMySQL(dsn string, opts Options, log *logrus.Logger) (*gorm.DB, error) {
	db, err := Open(mysql.Open(dsn), log)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Open wraps gorm.Open with the settings every caller relies on:
// driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, log *logrus.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	return gorm.Open(dialector, cfg)
}

// Migrate creates or updates the users and meals tables.
// When reset is set both tables are dropped first.
func Migrate(db *gorm.DB, reset bool, log *logrus.Logger) error {
	if reset {
		log.Warn("RESET_DB=true detected, dropping all tables")
		// meals first: it references users.
		for _, table := range []interface{}{&model.Meal{}, &model.User{}} {
			if err := db.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("failed to drop table (may not exist)")
			}
		}
	}

	if err := db.AutoMigrate(&model.User{}, &model.Meal{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
