// FilePath: internal/repository/redis/redis.resettoken.go

// Package redis holds the pending password reset tokens. Both scripts run
// server-side so overlapping requests for the same email cannot leave two
// tokens pending, and a token can be redeemed at most once.
package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vaudience/fleethub/internal/config"
	"github.com/vaudience/fleethub/internal/errors"
)

const (
	tokenKeyPrefix = "pwreset:token:"
	emailKeyPrefix = "pwreset:email:"
	tokenBytes     = 32
)

// issueScript replaces any pending token for the email and stores the new
// token with its TTL. KEYS[1] = email key; ARGV = token, ttl ms, email.
var issueScript = goredis.NewScript(`
local prev = redis.call("GET", KEYS[1])
if prev then
	redis.call("DEL", "pwreset:token:" .. prev)
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
redis.call("SET", "pwreset:token:" .. ARGV[1], ARGV[3], "PX", ARGV[2])
return 1
`)

// consumeScript deletes the token and its reverse mapping, returning the
// email, or false when the token is unknown or expired.
var consumeScript = goredis.NewScript(`
local email = redis.call("GET", KEYS[1])
if not email then
	return false
end
redis.call("DEL", KEYS[1])
redis.call("DEL", "pwreset:email:" .. email)
return email
`)

type ResetTokenRepo struct {
	client *goredis.Client
}

func NewResetTokenRepository(cfg config.RedisConfig) *ResetTokenRepo {
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &ResetTokenRepo{client: client}
}

// NewResetTokenRepositoryFromClient wraps an existing client. Tests back
// it with miniredis.
func NewResetTokenRepositoryFromClient(client *goredis.Client) *ResetTokenRepo {
	return &ResetTokenRepo{client: client}
}

// Issue creates a fresh single-use token for the email, replacing any
// token still pending for it.
func (r *ResetTokenRepo) Issue(ctx context.Context, email string, ttl time.Duration) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.NewInternalError("failed to generate reset token", err)
	}
	token := hex.EncodeToString(buf)

	err := issueScript.Run(ctx, r.client,
		[]string{emailKeyPrefix + email},
		token, ttl.Milliseconds(), email,
	).Err()
	if err != nil {
		return "", errors.NewDatabaseError("failed to store reset token", err)
	}
	return token, nil
}

// Consume redeems a token exactly once and returns the email it was issued
// for. Unknown, expired and already-redeemed tokens are indistinguishable.
func (r *ResetTokenRepo) Consume(ctx context.Context, token string) (string, error) {
	res, err := consumeScript.Run(ctx, r.client,
		[]string{tokenKeyPrefix + token},
	).Result()
	if err == goredis.Nil {
		return "", errors.NewResetTokenError("invalid or expired reset token", nil)
	}
	if err != nil {
		return "", errors.NewDatabaseError("failed to consume reset token", err)
	}
	email, ok := res.(string)
	if !ok || email == "" {
		return "", errors.NewResetTokenError("invalid or expired reset token", nil)
	}
	return email, nil
}

// Ping checks the redis connection at startup.
func (r *ResetTokenRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *ResetTokenRepo) Close() error {
	return r.client.Close()
}
