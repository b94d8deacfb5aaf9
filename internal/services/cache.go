package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ecolemusique/backoffice/internal/cache"
)

// ListCache wraps a cache so that its failures only ever cost a database read.
// The zero value caches nothing.
type ListCache struct {
	c   cache.Cache
	ttl time.Duration
	log *logrus.Logger
}

func NewListCache(c cache.Cache, ttl time.Duration, log *logrus.Logger) ListCache {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return ListCache{c: c, ttl: ttl, log: log}
}

func (l ListCache) get(ctx context.Context, key string, dst any) bool {
	if l.c == nil {
		return false
	}
	hit, err := l.c.GetJSON(ctx, key, dst)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (l ListCache) set(ctx context.Context, key string, val any) {
	if l.c == nil {
		return
	}
	if err := l.c.SetJSON(ctx, key, val, l.ttl); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (l ListCache) drop(ctx context.Context, keys ...string) {
	if l.c == nil {
		return
	}
	if err := l.c.Del(ctx, keys...); err != nil {
		l.log.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}
