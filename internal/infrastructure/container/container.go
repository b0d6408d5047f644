// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cocinero/v1/internal/application/adaptation"
	knowledgeApp "github.com/cocinero/v1/internal/application/knowledge"
	mealplanApp "github.com/cocinero/v1/internal/application/mealplan"
	preferenceApp "github.com/cocinero/v1/internal/application/preference"
	"github.com/cocinero/v1/internal/application/substitution"
	variantApp "github.com/cocinero/v1/internal/application/variant"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/infrastructure/config"
	"github.com/cocinero/v1/internal/infrastructure/http/handlers"
	"github.com/cocinero/v1/internal/infrastructure/http/server"
	gormRepo "github.com/cocinero/v1/internal/infrastructure/persistence/gorm"
	"github.com/cocinero/v1/internal/infrastructure/persistence/memory"
	redisRepo "github.com/cocinero/v1/internal/infrastructure/persistence/redis"
	"github.com/cocinero/v1/internal/infrastructure/persistence/sqlite"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
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

// DatabaseModule provides the GORM database handle. With the memory driver
// the handle is nil and the repository providers fall back to in-memory maps.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "memory" {
			log.Info("Using in-memory repositories")
			return nil, nil
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

// CacheModule provides caching
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Enabled {
			log.Info("Using Redis cache", zap.String("addr", cfg.Redis.RedisAddr()))
			return redisRepo.NewCacheRepository(cfg.Redis, log)
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository()
	},
)

// RepositoryModule provides repository implementations, switching between
// the GORM and in-memory adapters on the configured database driver
var RepositoryModule = fx.Provide(
	func(db *gorm.DB) outbound.IngredientRepository {
		if db == nil {
			return memory.NewIngredientRepository()
		}
		return gormRepo.NewIngredientRepository(db)
	},
	func(db *gorm.DB) outbound.ApplianceRepository {
		if db == nil {
			return memory.NewApplianceRepository()
		}
		return gormRepo.NewApplianceRepository(db)
	},
	func(db *gorm.DB) outbound.SubstitutionEdgeRepository {
		if db == nil {
			return memory.NewSubstitutionEdgeRepository()
		}
		return gormRepo.NewSubstitutionEdgeRepository(db)
	},
	func(db *gorm.DB) outbound.AdaptationEdgeRepository {
		if db == nil {
			return memory.NewAdaptationEdgeRepository()
		}
		return gormRepo.NewAdaptationEdgeRepository(db)
	},
	func(db *gorm.DB) outbound.PreferenceRepository {
		if db == nil {
			return memory.NewPreferenceRepository()
		}
		return gormRepo.NewPreferenceRepository(db)
	},
	func(db *gorm.DB) outbound.RecipeRepository {
		if db == nil {
			return memory.NewRecipeRepository()
		}
		return gormRepo.NewRecipeRepository(db)
	},
	func(db *gorm.DB) outbound.VariantRepository {
		if db == nil {
			return memory.NewVariantRepository()
		}
		return gormRepo.NewVariantRepository(db)
	},
	func(db *gorm.DB) outbound.HistoryRepository {
		if db == nil {
			return memory.NewHistoryRepository()
		}
		return gormRepo.NewHistoryRepository(db)
	},
	func(db *gorm.DB) outbound.KnowledgeRepository {
		if db == nil {
			return memory.NewKnowledgeRepository()
		}
		return gormRepo.NewKnowledgeRepository(db)
	},
	func(db *gorm.DB) outbound.MealPlanRepository {
		if db == nil {
			return memory.NewMealPlanRepository()
		}
		return gormRepo.NewMealPlanRepository(db)
	},
	func(db *gorm.DB) outbound.InventoryRepository {
		if db == nil {
			return memory.NewInventoryRepository()
		}
		return gormRepo.NewInventoryRepository(db)
	},
	func(db *gorm.DB) outbound.ProfileRepository {
		if db == nil {
			return memory.NewProfileRepository()
		}
		return gormRepo.NewProfileRepository(db)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	preferenceApp.NewService,
	substitution.NewService,
	adaptation.NewApplianceService,

	func(
		cfg *config.Config,
		recipes outbound.RecipeRepository,
		ingredients outbound.IngredientRepository,
		edges outbound.SubstitutionEdgeRepository,
		substitutions inbound.SubstitutionService,
		appliances inbound.AdaptationService,
		log *zap.Logger,
	) inbound.RecipeAdaptService {
		return adaptation.NewRecipeService(
			recipes, ingredients, edges, substitutions, appliances,
			dietaryRules(cfg.Dietary), log,
		)
	},

	variantApp.NewService,
	knowledgeApp.NewService,
	mealplanApp.NewHistoryService,

	func(
		cfg *config.Config,
		recipes outbound.RecipeRepository,
		inventory outbound.InventoryRepository,
		history outbound.HistoryRepository,
		profiles outbound.ProfileRepository,
		plans outbound.MealPlanRepository,
		cache outbound.CacheRepository,
		log *zap.Logger,
	) inbound.PlannerService {
		return mealplanApp.NewService(
			recipes, inventory, history, profiles, plans, cache,
			plannerOptions(cfg.Planner), log,
		)
	},
)

// dietaryRules maps the configured rule table onto the adaptation rule
// type, falling back to the built-in table when none is configured
func dietaryRules(cfg config.DietaryConfig) adaptation.DietaryRules {
	if len(cfg.Rules) == 0 {
		return adaptation.DefaultDietaryRules()
	}
	rules := make(adaptation.DietaryRules, len(cfg.Rules))
	for restriction, matches := range cfg.Rules {
		converted := make([]adaptation.CategoryMatch, len(matches))
		for i, m := range matches {
			converted[i] = adaptation.CategoryMatch{
				Category:      m.Category,
				Subcategories: m.Subcategories,
			}
		}
		rules[restriction] = converted
	}
	return rules
}

// plannerOptions maps planner configuration onto the service options
func plannerOptions(cfg config.PlannerConfig) mealplanApp.Options {
	opts := mealplanApp.Options{
		Temperature: cfg.Temperature,
		Weights: mealplanApp.Weights{
			Inventory:   cfg.Weights.Inventory,
			History:     cfg.Weights.History,
			Variety:     cfg.Weights.Variety,
			Freshness:   cfg.Weights.Freshness,
			Preferences: cfg.Weights.Preferences,
		},
	}
	if len(cfg.SlotKeywords) > 0 {
		opts.SlotKeywords = make(mealplanApp.SlotKeywords, len(cfg.SlotKeywords))
		for slot, keywords := range cfg.SlotKeywords {
			opts.SlotKeywords[mealplan.Slot(slot)] = keywords
		}
	}
	return opts
}

// HTTPModule provides the HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewAPIHandlers,
	server.NewServer,
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
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if db != nil {
				sqlDB, err := db.DB()
				if err == nil {
					if err := sqlDB.Close(); err != nil {
						log.Error("Failed to close database connection", zap.Error(err))
					}
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
