package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lock only while it still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// UserLock serializes order creation per user with SET NX.
type UserLock struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewUserLock(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *UserLock {
	return &UserLock{rdb: rdb, ttl: ttl, logger: logger}
}

func lockKey(userID string) string {
	return fmt.Sprintf("order:lock:%s", userID)
}

// Acquire reports whether the lock was taken. While held, the lock is renewed
// every third of its TTL so a slow workflow cannot outlive it. The returned
// release func is always safe to call.
func (l *UserLock) Acquire(ctx context.Context, userID string) (func(), bool, error) {
	key := lockKey(userID)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("acquire order lock for user %s: %w", userID, err)
	}
	if !ok {
		return func() {}, false, nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(context.WithoutCancel(ctx), key, token, userID, stop, done)

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(stop)
			<-done

			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err(); err != nil {
				l.logger.Warn("Failed to release order lock", zap.String("user_id", userID), zap.Error(err))
			}
		})
	}
	return release, true, nil
}

func (l *UserLock) keepAlive(ctx context.Context, key, token, userID string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := l.ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			renewCtx, cancel := context.WithTimeout(ctx, interval)
			held, err := renewScript.Run(renewCtx, l.rdb, []string{key}, token, l.ttl.Milliseconds()).Int()
			cancel()
			if err != nil {
				l.logger.Warn("Failed to renew order lock", zap.String("user_id", userID), zap.Error(err))
				continue
			}
			if held == 0 {
				l.logger.Warn("Order lock lost before release", zap.String("user_id", userID))
				return
			}
		}
	}
}
