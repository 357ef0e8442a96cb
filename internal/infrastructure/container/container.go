// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mealsmith/v2/internal/application/planner"
	"github.com/mealsmith/v2/internal/infrastructure/config"
	"github.com/mealsmith/v2/internal/infrastructure/http/apiserver"
	gormRepo "github.com/mealsmith/v2/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/v2/internal/infrastructure/persistence/postgres"
	redisAdapter "github.com/mealsmith/v2/internal/infrastructure/persistence/redis"
	"github.com/mealsmith/v2/internal/infrastructure/persistence/sqlite"
	"github.com/mealsmith/v2/internal/ports/inbound"
	"github.com/mealsmith/v2/internal/ports/outbound"
	"github.com/mealsmith/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RedisModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM database handle. Postgres is the
// production driver; anything else falls back to a seeded SQLite
// database so the engine runs without external services.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			manager, err := postgres.NewConnectionManager(cfg, log)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to postgres: %w", err)
			}
			return manager.GetDB(), nil
		}

		dbPath := ":memory:"
		if cfg.Database.Database != "" {
			dbPath = cfg.Database.Database + ".db"
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if err := sqlite.SeedDatabase(db); err != nil {
			log.Warn("Failed to seed database", zap.Error(err))
		}

		log.Info("Connected to SQLite database",
			zap.String("path", dbPath),
			zap.Bool("in_memory", dbPath == ":memory:"),
		)

		return db, nil
	},
)

// RedisModule provides the Redis client plus the quota and pick-cache
// adapters backed by it
var RedisModule = fx.Provide(
	func(cfg *config.Config) (*redis.Client, error) {
		return redisAdapter.NewClient(cfg.Redis)
	},
	func(client *redis.Client, cfg *config.Config, log *zap.Logger) outbound.UsageService {
		return redisAdapter.NewUsageService(client, cfg.Quota, log)
	},
	func(client *redis.Client, cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		return redisAdapter.NewCacheRepository(client, cfg.PickCache, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewPlanRepository,
	gormRepo.NewJobRepository,
	gormRepo.NewMemberRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		recipes outbound.RecipeRepository,
		plans outbound.PlanRepository,
		jobs outbound.JobRepository,
		members outbound.MemberRepository,
		usage outbound.UsageService,
		cache outbound.CacheRepository,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.PlannerService {
		return planner.NewService(recipes, plans, jobs, members, usage, cache, planner.Config{
			PoolLimit:         cfg.Planner.PoolLimit,
			ReplacePoolLimit:  cfg.Planner.ReplacePoolLimit,
			HistoryDays:       cfg.Planner.HistoryDays,
			ChatHistoryDays:   cfg.Planner.ChatHistoryDays,
			MinPoolForHistory: cfg.Planner.MinPoolForHistory,
			BerryTargetRatio:  cfg.Planner.BerryTargetRatio,
		}, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Mealsmith application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Mealsmith application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
