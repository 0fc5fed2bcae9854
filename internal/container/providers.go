package container

import (
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/garyjia/listing-compliance/internal/ai"
	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/application/service"
	infraLark "github.com/garyjia/listing-compliance/internal/infrastructure/external/lark"
	"github.com/garyjia/listing-compliance/internal/infrastructure/external/openai"
	"github.com/garyjia/listing-compliance/internal/infrastructure/persistence/repository"
	"github.com/garyjia/listing-compliance/internal/infrastructure/persistence/sqlite"
	httpServer "github.com/garyjia/listing-compliance/internal/interfaces/http"
	"github.com/garyjia/listing-compliance/migrations"
	"github.com/garyjia/listing-compliance/pkg/database"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.DB
}

// ProvideDatabase opens the database and applies pending migrations.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	migrator := database.NewMigrator(db, logger)
	if cfg.MigrationsDir != "" {
		err = migrator.RunMigrations(cfg.MigrationsDir)
	} else {
		err = migrator.Run(migrations.FS)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewDB(db.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories over the transaction-aware DB.
func ProvideRepositories(db *sqlite.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Listing:    repository.NewListingRepository(db, logger),
		Validation: repository.NewValidationRepository(db, logger),
	}, nil
}

// ProvideAIValidator returns the OpenAI validator when enabled and the
// heuristic validator otherwise.
func ProvideAIValidator(cfg *OpenAIConfig, logger *zap.Logger) (port.AIValidator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("openai config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if !cfg.Enabled {
		logger.Info("AI validation disabled, using basic validator")
		return ai.NewBasicValidator(), nil
	}

	prompts := openai.DefaultPrompts()
	if cfg.PromptsPath != "" {
		loaded, err := openai.LoadPrompts(cfg.PromptsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompts: %w", err)
		}
		prompts = loaded
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return openai.NewValidatorWithConfig(clientCfg, cfg.Model, prompts, logger), nil
}

// ProvideNotifier returns a Lark notifier when enabled and a no-op otherwise.
func ProvideNotifier(cfg *LarkConfig, logger *zap.Logger) (port.ReviewNotifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("lark config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if !cfg.Enabled {
		return infraLark.NewNoopNotifier(logger), nil
	}

	client := infraLark.NewSDKClient(infraLark.Config{
		AppID:          cfg.AppID,
		AppSecret:      cfg.AppSecret,
		ReviewerOpenID: cfg.ReviewerOpenID,
	}, logger)

	return infraLark.NewNotifier(client, cfg.ReviewerOpenID, logger), nil
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Repos       *RepositoryBundle
	TxManager   port.TransactionManager
	AIValidator port.AIValidator
	Notifier    port.ReviewNotifier
	Logger      *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.AIValidator == nil {
		return nil, fmt.Errorf("AI validator is required")
	}
	if deps.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	return &ServiceBundle{
		Listing: service.NewListingService(
			deps.Repos.Listing,
			deps.Repos.Validation,
			deps.TxManager,
			serviceLogger,
		),
		Validation: service.NewValidationService(
			deps.Repos.Listing,
			deps.Repos.Validation,
			deps.TxManager,
			deps.AIValidator,
			deps.Notifier,
			serviceLogger,
		),
	}, nil
}

// ProvideHTTPServer creates the HTTP server over the application services.
func ProvideHTTPServer(cfg *ServerConfig, services *ServiceBundle, logger *zap.Logger) (*httpServer.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}

	return httpServer.NewServer(httpServer.ServerConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, services.Listing, services.Validation, &zapLoggerAdapter{logger: logger}), nil
}
