// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect accepts redis:// and rediss:// URLs, retries the initial ping with
// a doubling interval and returns a verified client. Healthcheck wraps the
// client in a probe usable with core/health:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := health.Readiness[*App](log, redis.Healthcheck(client))
package redis
