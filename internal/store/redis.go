package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "gymbot:"
	turnsTTL         = 30 * 24 * time.Hour
)

// RedisStore keeps registrations in a hash keyed by user and each turn log in
// a capped list that expires after turnsTTL of inactivity.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to url (redis://host:port/db) and verifies the
// connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisStore{rdb: rdb, prefix: defaultKeyPrefix}, nil
}

func (s *RedisStore) registrationsKey() string { return s.prefix + "registrations" }

func (s *RedisStore) turnsKey(conversationID string) string {
	return s.prefix + "turns:" + conversationID
}

func (s *RedisStore) SaveRegistration(ctx context.Context, r Registration) error {
	if r.UserID == "" {
		return fmt.Errorf("registration without user id")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling registration: %w", err)
	}
	if err := s.rdb.HSet(ctx, s.registrationsKey(), r.UserID, data).Err(); err != nil {
		return fmt.Errorf("saving registration: %w", err)
	}
	return nil
}

func (s *RedisStore) ListRegistrations(ctx context.Context) ([]Registration, error) {
	vals, err := s.rdb.HGetAll(ctx, s.registrationsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	regs := make([]Registration, 0, len(vals))
	for _, v := range vals {
		var r Registration
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("unmarshaling registration: %w", err)
		}
		regs = append(regs, r)
	}
	return regs, nil
}

func (s *RedisStore) AppendTurn(ctx context.Context, conversationID string, t TurnRecord) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling turn: %w", err)
	}

	key := s.turnsKey(conversationID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -maxTurns, -1)
	pipe.Expire(ctx, key, turnsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("appending turn: %w", err)
	}
	return nil
}

func (s *RedisStore) GetTurns(ctx context.Context, conversationID string) ([]TurnRecord, error) {
	vals, err := s.rdb.LRange(ctx, s.turnsKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("loading turns: %w", err)
	}

	var turns []TurnRecord
	for _, v := range vals {
		var t TurnRecord
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			return nil, fmt.Errorf("unmarshaling turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
