package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/application/handlers"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/domain/services"
	"github.com/ersonp/rolodex/internal/infrastructure/config"
	"github.com/ersonp/rolodex/internal/infrastructure/llm"
	"github.com/ersonp/rolodex/internal/infrastructure/llm/openai"
	"github.com/ersonp/rolodex/internal/infrastructure/logging"
	"github.com/ersonp/rolodex/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands. The store and logger
// stay in internalDeps.
type Deps struct {
	Config              *config.Config
	UserHandler         *handlers.UserHandler
	ContactHandler      *handlers.ContactHandler
	EntityHandler       *handlers.EntityHandler
	RelationshipHandler *handlers.RelationshipHandler
	RoleHandler         *handlers.RoleHandler
	InteractionHandler  *handlers.InteractionHandler
	ImportHandler       *handlers.ImportHandler

	// Fetcher reads a user's whole graph for export.
	Fetcher services.ContextFetcher
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	logger *zap.Logger
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if globalVerbose {
		cfg.Log.Env = "development"
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	roleService := services.NewContactRoleService(store, logger)

	deps := &internalDeps{
		Deps: Deps{
			Config:              cfg,
			UserHandler:         handlers.NewUserHandler(services.NewUserService(store, logger), store),
			ContactHandler:      handlers.NewContactHandler(services.NewContactService(store, logger)),
			EntityHandler:       handlers.NewEntityHandler(services.NewGlobalEntityService(store, logger), roleService),
			RelationshipHandler: handlers.NewRelationshipHandler(services.NewRelationshipService(store, logger)),
			RoleHandler:         handlers.NewRoleHandler(roleService),
			InteractionHandler:  handlers.NewInteractionHandler(services.NewInteractionService(store, logger)),
			ImportHandler:       handlers.NewImportHandler(services.NewImportService(store, logger)),
			Fetcher:             services.NewContextAggregator(store, logger),
		},
		logger: logger,
	}

	return fn(deps)
}

// withQueryHandler builds the answering pipeline. It is separate from
// withDeps so commands that never call the model work without an API key.
func withQueryHandler(fn func(*handlers.QueryHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		client, err := openai.NewClient(d.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}

		answerer := llm.NewGuarded(client, llm.GuardConfig{
			RatePerSecond: d.Config.LLM.RatePerSecond,
			Burst:         d.Config.LLM.Burst,
			MaxFailures:   d.Config.LLM.MaxFailures,
			Cooldown:      d.Config.LLM.Cooldown,
		}, d.logger)

		queryService := services.NewQueryService(
			d.Fetcher,
			services.NewPromptAssembler(),
			answerer,
			d.Config.Query.Timeout,
			d.logger,
		)
		return fn(handlers.NewQueryHandler(queryService))
	})
}

// openStore opens the SQLite graph store.
func openStore(cfg config.SQLiteConfig) (ports.GraphStore, error) {
	return sqlite.NewRepository(cfg)
}

// requireUser returns the --user value or an error when it is unset.
func requireUser() (string, error) {
	if globalUser == "" {
		return "", errors.New("user is required (use --user flag or ROLODEX_USER)")
	}
	return globalUser, nil
}
