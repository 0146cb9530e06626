package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Scope implements blackboard.Scope over a Redis hash, so every process
// sharing the hash sees the same global blackboard. Values are stored as
// JSON; numbers therefore come back as float64.
//
// The blackboard interface has no error returns. Transport and decoding
// failures are logged and reported as an absent key.
type Scope struct {
	client  *backend.Client
	key     string
	ctx     context.Context
	timeout time.Duration
	logger  *slog.Logger
}

// ScopeOption configures a Scope.
type ScopeOption func(*Scope)

// WithScopeKey sets the hash holding the scope.
func WithScopeKey(key string) ScopeOption {
	return func(s *Scope) {
		s.key = key
	}
}

// WithScopeTimeout bounds every Redis round trip.
func WithScopeTimeout(d time.Duration) ScopeOption {
	return func(s *Scope) {
		s.timeout = d
	}
}

// WithScopeContext sets the parent context of every operation.
func WithScopeContext(ctx context.Context) ScopeOption {
	return func(s *Scope) {
		s.ctx = ctx
	}
}

// WithScopeLogger sets the logger failures are reported to.
func WithScopeLogger(logger *slog.Logger) ScopeOption {
	return func(s *Scope) {
		s.logger = logger
	}
}

// NewScope creates a global scope backed by client.
func NewScope(client *backend.Client, opts ...ScopeOption) *Scope {
	s := &Scope{
		client:  client,
		key:     DefaultPrefix + "global",
		ctx:     context.Background(),
		timeout: time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scope) op() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.timeout)
}

func (s *Scope) fail(op, field string, err error) {
	s.logger.Error("global scope", "op", op, "key", field, "error", err)
}

func (s *Scope) Get(key string) (any, bool) {
	ctx, cancel := s.op()
	defer cancel()

	raw, err := s.client.HGet(ctx, s.key, key).Result()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			s.fail("get", key, err)
		}
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.fail("decode", key, err)
		return nil, false
	}
	return v, true
}

func (s *Scope) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.fail("encode", key, err)
		return
	}
	ctx, cancel := s.op()
	defer cancel()
	if err := s.client.HSet(ctx, s.key, key, data).Err(); err != nil {
		s.fail("set", key, err)
	}
}

func (s *Scope) Has(key string) bool {
	ctx, cancel := s.op()
	defer cancel()
	ok, err := s.client.HExists(ctx, s.key, key).Result()
	if err != nil {
		s.fail("has", key, err)
		return false
	}
	return ok
}

func (s *Scope) Delete(key string) {
	ctx, cancel := s.op()
	defer cancel()
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		s.fail("delete", key, err)
	}
}

func (s *Scope) Keys() []string {
	ctx, cancel := s.op()
	defer cancel()
	keys, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		s.fail("keys", "", err)
		return nil
	}
	sort.Strings(keys)
	return keys
}

func (s *Scope) Snapshot() map[string]any {
	ctx, cancel := s.op()
	defer cancel()
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		s.fail("snapshot", "", err)
		return map[string]any{}
	}
	out := make(map[string]any, len(all))
	for k, raw := range all {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			s.fail("decode", k, err)
			continue
		}
		out[k] = v
	}
	return out
}
