// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealsmith/v2/internal/infrastructure/config"
	gormModels "github.com/mealsmith/v2/internal/infrastructure/persistence/gorm"
)

// ConnectionManager manages the PostgreSQL connection and its pool
type ConnectionManager struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewConnectionManager opens the primary database connection with
// pooling configured from the application config
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	cm := &ConnectionManager{
		config: cfg,
		logger: log,
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:                 cm.createGORMLogger(),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.sqlDB = sqlDB

	if cfg.Database.AutoMigrate {
		if err := cm.migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("Database connection manager initialized",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.Database.ConnMaxLifetime),
	)

	return cm, nil
}

func (cm *ConnectionManager) migrate() error {
	return cm.db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.PlanDayModel{},
		&gormModels.JobModel{},
		&gormModels.MemberModel{},
	)
}

// createGORMLogger maps the configured log level onto the GORM logger
func (cm *ConnectionManager) createGORMLogger() logger.Interface {
	logLevel := logger.Silent
	switch cm.config.Database.LogLevel {
	case "debug":
		logLevel = logger.Info
	case "info":
		logLevel = logger.Warn
	case "warn", "error":
		logLevel = logger.Error
	}

	return logger.New(
		&GORMLogWriter{logger: cm.logger},
		logger.Config{
			SlowThreshold:             cm.config.Database.SlowQueryThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GetDB returns the main database connection
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// HealthCheck performs a health check on the database connection
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	if cm.sqlDB != nil {
		return cm.sqlDB.Close()
	}
	return nil
}

// GORMLogWriter routes GORM log output through zap
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements the GORM logger writer interface
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Debugf(format, args...)
}
