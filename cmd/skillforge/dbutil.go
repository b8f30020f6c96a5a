package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillforge/skillforge/modules"
	"github.com/skillforge/skillforge/pkg/application"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/configuration"
	"github.com/skillforge/skillforge/pkg/eventbus"
)

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return pool, nil
}

func newApp(pool *pgxpool.Pool) (application.Application, error) {
	conf := configuration.Use()
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	if err := modules.Load(app); err != nil {
		return nil, err
	}
	return app, nil
}

func parseUUIDFlag(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return id, nil
}

// workspaceContext binds the pool and the workspace scope every repository
// expects.
func workspaceContext(ctx context.Context, pool *pgxpool.Pool, workspace string) (context.Context, error) {
	workspaceID, err := uuid.Parse(workspace)
	if err != nil {
		return nil, fmt.Errorf("invalid --workspace: %w", err)
	}
	ctx = composables.WithPool(ctx, pool)
	return composables.WithWorkspaceID(ctx, workspaceID), nil
}
