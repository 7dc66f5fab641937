package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CartLocker serializes mutations of a single cart. The returned func
// releases the lock and is safe to call more than once.
type CartLocker interface {
	Lock(ctx context.Context, cartID int) (func(), error)
}

type localLock struct {
	ch   chan struct{}
	refs int
}

// LocalCartLocker serializes cart mutations within this process.
type LocalCartLocker struct {
	mu    sync.Mutex
	locks map[int]*localLock
}

func NewLocalCartLocker() *LocalCartLocker {
	return &LocalCartLocker{locks: make(map[int]*localLock)}
}

func (l *LocalCartLocker) Lock(ctx context.Context, cartID int) (func(), error) {
	l.mu.Lock()
	lk, ok := l.locks[cartID]
	if !ok {
		lk = &localLock{ch: make(chan struct{}, 1)}
		l.locks[cartID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-lk.ch
				l.release(cartID, lk)
			})
		}, nil
	case <-ctx.Done():
		l.release(cartID, lk)
		return nil, ctx.Err()
	}
}

func (l *LocalCartLocker) release(cartID int, lk *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, cartID)
	}
}

var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCartLocker serializes cart mutations across processes sharing a Redis.
type RedisCartLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryEvery time.Duration
}

// NewRedisCartLocker creates a locker whose locks expire after ttl if never
// released.
func NewRedisCartLocker(client *redis.Client, ttl time.Duration) *RedisCartLocker {
	return &RedisCartLocker{
		client:     client,
		ttl:        ttl,
		retryEvery: 25 * time.Millisecond,
	}
}

func (l *RedisCartLocker) getKey(cartID int) string {
	return fmt.Sprintf("lock:cart:%d", cartID)
}

func (l *RedisCartLocker) Lock(ctx context.Context, cartID int) (func(), error) {
	key := l.getKey(cartID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("acquire cart lock %d: %w", cartID, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryEvery):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseLockScript.Run(releaseCtx, l.client, []string{key}, token).Err()
		})
	}, nil
}
