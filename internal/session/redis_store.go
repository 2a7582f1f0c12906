package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisUserKey  = "session:user"
	redisTokenKey = "session:authToken"
)

// RedisStore persists the session in Redis so it survives process
// restarts, keyed per device/client id.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the session keys, e.g. a client/device id.
	Prefix string
	// TTL of 0 keeps the session until an explicit logout.
	TTL time.Duration
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &RedisStore{rdb: rdb, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Save(ctx context.Context, user []byte, token string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(redisUserKey), user, s.ttl)
		pipe.Set(ctx, s.key(redisTokenKey), token, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, string, error) {
	token, err := s.rdb.Get(ctx, s.key(redisTokenKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrNoSession
		}
		return nil, "", err
	}

	user, err := s.rdb.Get(ctx, s.key(redisUserKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, token, nil
		}
		return nil, "", err
	}

	return user, token, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key(redisUserKey), s.key(redisTokenKey)).Err()
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}
