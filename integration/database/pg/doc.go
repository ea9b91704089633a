// Package pg opens PostgreSQL connection pools with github.com/jackc/pgx/v5.
//
// Connect retries pool creation and the initial ping, Healthcheck wraps the
// pool in a probe usable with core/health, Migrate applies goose migrations
// from an fs.FS (usually embedded), and the Is* helpers classify
// common driver errors so endpoints can map them to HTTP errors:
//
//	if pg.IsNotFoundError(err) {
//		return nil, response.ErrNotFound
//	}
package pg
