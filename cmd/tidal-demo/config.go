package main

import (
	"time"

	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/server"
	"github.com/dmitrymomot/tidal/integration/database/pg"
	"github.com/dmitrymomot/tidal/integration/database/redis"
	"github.com/dmitrymomot/tidal/pkg/ratelimiter"
)

// Config is loaded from the environment and an optional .env file.
type Config struct {
	AppName        string        `env:"APP_NAME" envDefault:"tidal-demo"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	MaxBodySize    int64         `env:"MAX_BODY_SIZE" envDefault:"1048576"`

	// Postgres and Redis are only used when their toggles are on.
	UsePostgres bool `env:"USE_POSTGRES" envDefault:"false"`
	UseRedis    bool `env:"USE_REDIS" envDefault:"false"`

	Server    server.Config
	Log       logger.Config
	RateLimit ratelimiter.Config
	DB        pg.Config
	Redis     redis.Config
}
