package main

import (
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// App is shared by every request. Fields other than hits are set before
// serving and only read afterwards.
type App struct {
	started time.Time
	hits    atomic.Int64

	db    *pgxpool.Pool
	cache goredis.UniversalClient
}

func (a *App) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
}
