package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lessongenie/web/internal/controller"
)

// maxUpdateRetries bounds optimistic retries in Update.
const maxUpdateRetries = 10

// RedisStore shares sessions between instances. Keys expire after ttl of
// inactivity, so Purge has nothing to do.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedis(addr, password string, db int, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb, ttl: ttl}
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return fmt.Sprintf("lessongenie:session:%s", id)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*controller.Session, error) {
	return r.get(ctx, r.client, id)
}

// stringGetter is satisfied by *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, c stringGetter, id string) (*controller.Session, error) {
	val, err := c.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess controller.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (r *RedisStore) encode(sess *controller.Session) ([]byte, error) {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, sess *controller.Session) error {
	data, err := r.encode(sess)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sess.ID), data, r.ttl).Err()
}

// Update watches the key and writes in a MULTI block, so a save by another
// instance between the read and the write makes the attempt fail and retry
// against the newer session.
func (r *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*controller.Session, error) {
	key := sessionKey(id)
	var out *controller.Session

	txf := func(tx *redis.Tx) error {
		sess, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		data, err := r.encode(sess)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			out = sess
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, ErrConflict
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
