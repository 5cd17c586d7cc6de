package session

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"

	"wardrobe-storefront/internal/domain"
)

const (
	keyPrefix     = "storefront:session:"
	updateRetries = 5
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

// NewRedis stores each session as one JSON value whose TTL is refreshed on
// every write.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisRepo{client: client, ttl: ttl, logger: logger, now: time.Now}
}

func key(id string) string {
	return keyPrefix + id
}

func (r *redisRepo) Create(ctx context.Context, s *Session) error {
	now := r.now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	ok, err := r.client.SetNX(ctx, key(s.ID), data, r.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "create session")
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	r.logger.Printf("session repo: create id=%s ttl=%s", s.ID, r.ttl)
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "get session")
	}
	return decode(data)
}

func (r *redisRepo) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	k := key(id)
	var updated *Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrNotFound
			}
			return errors.Wrap(err, "get session")
		}
		s, err := decode(data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		s.ID = id
		s.UpdatedAt = r.now().UTC()
		out, err := json.Marshal(s)
		if err != nil {
			return errors.Wrap(err, "marshal session")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = s
		return nil
	}

	for attempt := 1; attempt <= updateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, k)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		r.logger.Printf("session repo: update conflict id=%s attempt=%d", id, attempt)
	}
	return nil, errors.Wrapf(domain.ErrConflict, "session %s changed concurrently", id)
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return errors.Wrap(err, "delete session")
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &s, nil
}
