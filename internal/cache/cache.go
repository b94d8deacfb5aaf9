package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Only whole listings are cached; per-user association reads always hit the database.
const (
	KeyUsers       = "backoffice:users"
	KeyInstruments = "backoffice:instruments"
	KeyOrchestras  = "backoffice:orchestras"
)

// Nop never hits. Used when REDIS_URL is empty.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error { return nil }
