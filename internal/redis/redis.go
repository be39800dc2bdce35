// Package redis keeps the logout revocation list. Tokens are long
// lived for kiosk use, so logout must invalidate them server side
// until their natural expiry.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

const revokedPrefix = "carecal:revoked:"

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// RevokeToken blacklists a token until ttl elapses. A no-op when redis
// is not configured (single-box deployments without logout).
func RevokeToken(ctx context.Context, token string, ttl time.Duration) {
	if Rdb == nil || ttl <= 0 {
		return
	}
	if err := Rdb.Set(ctx, revokedPrefix+token, "1", ttl).Err(); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")
	}
}

// TokenRevoked reports whether the token has been logged out. Fails
// open when redis is unavailable so a cache outage cannot lock every
// coordinator out.
func TokenRevoked(ctx context.Context, token string) bool {
	if Rdb == nil {
		return false
	}
	n, err := Rdb.Exists(ctx, revokedPrefix+token).Result()
	if err != nil {
		log.Error().Err(err).Msg("revocation check failed")
		return false
	}
	return n > 0
}
