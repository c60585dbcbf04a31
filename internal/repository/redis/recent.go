package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	recentSearchesKey = "catalog:recent_searches"
	maxRecentSearches = 5
)

// RecentSearchStore keeps the most recent search queries in a Redis list,
// most-recent-first, de-duplicated, capped at five entries.
type RecentSearchStore struct {
	client *redis.Client
}

// NewRecentSearchStore creates a Redis-backed recent-search store.
func NewRecentSearchStore(client *redis.Client) *RecentSearchStore {
	return &RecentSearchStore{client: client}
}

// Record pushes the query to the front of the list. An existing occurrence
// is removed first so the list stays de-duplicated, then the list is trimmed
// to the cap.
func (s *RecentSearchStore) Record(ctx context.Context, query string) error {
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, recentSearchesKey, 0, query)
	pipe.LPush(ctx, recentSearchesKey, query)
	pipe.LTrim(ctx, recentSearchesKey, 0, maxRecentSearches-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record recent search: %w", err)
	}
	return nil
}

// Recent returns the stored queries, newest first.
func (s *RecentSearchStore) Recent(ctx context.Context) ([]string, error) {
	queries, err := s.client.LRange(ctx, recentSearchesKey, 0, maxRecentSearches-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent searches: %w", err)
	}
	return queries, nil
}
