package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges response-cache namespaces after writes. Keys
// embed a SHA1 of the request, so purges scan the whole namespace.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeEvents(ctx context.Context) {
	ci.purge(ctx, "cache:events:*")
}

func (ci *CacheInvalidator) PurgeAnnouncements(ctx context.Context) {
	ci.purge(ctx, "cache:announcements:*")
}

func (ci *CacheInvalidator) PurgeClubs(ctx context.Context) {
	ci.purge(ctx, "cache:clubs:*")
}

func (ci *CacheInvalidator) purge(ctx context.Context, pattern string) {
	iter := ci.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}
