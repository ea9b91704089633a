package pg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/tidal/core/logger"
)

// Migrate applies every pending goose migration found at the root of
// migrations. An empty set of migrations is not an error.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, log *slog.Logger) error {
	if migrations == nil {
		return ErrMigrationsNotProvided
	}
	if log == nil {
		log = logger.Discard()
	}

	// goose runs on database/sql; the pool keeps owning the connections.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if errors.Is(err, goose.ErrNoMigrations) {
		log.InfoContext(ctx, "no migrations to apply", logger.Component("migrations"))
		return nil
	}
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("migrations"),
			slog.Int64("version", r.Source.Version),
			logger.Duration(r.Duration),
		)
	}
	return nil
}
