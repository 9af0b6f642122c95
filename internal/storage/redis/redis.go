package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avstrong/rental/internal/booking"
)

var ErrSessionExists = errors.New("session already exists")

const keyPrefix = "rental:session:"

type Config struct {
	URL string
	TTL time.Duration
}

// Sessions keeps booking session state in Redis. Every write refreshes the
// key expiry, so idle sessions disappear on their own.
type Sessions struct {
	client *redis.Client
	ttl    time.Duration
}

func Connect(ctx context.Context, conf Config) (*Sessions, error) {
	opt, err := redis.ParseURL(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return New(client, conf.TTL), nil
}

func New(client *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *Sessions) CreateSession(ctx context.Context, id string, details booking.Details) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}

	created, err := s.client.SetNX(ctx, key(id), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session %s: %w", id, err)
	}

	if !created {
		return fmt.Errorf("session %s: %w", id, ErrSessionExists)
	}

	return nil
}

func (s *Sessions) GetSession(ctx context.Context, id string) (booking.Details, error) {
	payload, err := s.client.GetEx(ctx, key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return booking.Details{}, booking.ErrSessionNotFound
	}

	if err != nil {
		return booking.Details{}, fmt.Errorf("get session %s: %w", id, err)
	}

	var details booking.Details

	if err := json.Unmarshal(payload, &details); err != nil {
		return booking.Details{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	return details, nil
}

// SaveSession only overwrites a session that still exists.
func (s *Sessions) SaveSession(ctx context.Context, id string, details booking.Details) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}

	updated, err := s.client.SetXX(ctx, key(id), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}

	if !updated {
		return booking.ErrSessionNotFound
	}

	return nil
}

func (s *Sessions) Close() error {
	return s.client.Close() //nolint:wrapcheck
}
