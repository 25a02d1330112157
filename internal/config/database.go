package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// OpenDB اتصال به دیتابیس MySQL یا PostgreSQL را راه‌اندازی می‌کند
func OpenDB(s *Settings, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(s.DBDSN)
	case DriverPostgres:
		dialector = postgres.Open(s.DBDSN)
	default:
		return nil, fmt.Errorf("no sql dialector for driver %q", s.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// خطای unique و foreign key به gorm.ErrDuplicatedKey / ErrForeignKeyViolated تبدیل می‌شود
		TranslateError: true,
		Logger:         NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if s.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(s.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(s.DBMaxOpenConns / 2)
	}

	logger.Info("✅ Database connected", zap.String("driver", s.DBDriver))
	return db, nil
}
