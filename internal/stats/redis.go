package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/routesuggest/config"
	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	searchesKey = "stats:routes:searches"
	missesKey   = "stats:routes:misses"

	// maxMisses caps the misses set; the least searched pairs are trimmed.
	maxMisses = 1000
)

// RedisStore keeps per-pair search counters in sorted sets. Found pairs are
// bounded by the dataset; misses live in a separate, capped set.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (s *RedisStore) RecordSearch(ctx context.Context, source, destination string, found bool) error {
	member, err := pairMember(source, destination)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	if found {
		pipe.ZIncrBy(ctx, searchesKey, 1, member)
	} else {
		pipe.ZIncrBy(ctx, missesKey, 1, member)
		pipe.ZRemRangeByRank(ctx, missesKey, 0, -(maxMisses + 1))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// TopRoutes returns at most limit pairs, most searched first.
func (s *RedisStore) TopRoutes(ctx context.Context, limit int) ([]domain.PairStat, error) {
	if limit <= 0 {
		return []domain.PairStat{}, nil
	}
	entries, err := s.client.ZRevRangeWithScores(ctx, searchesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.PairStat, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		source, destination, err := splitMember(member)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PairStat{Source: source, Destination: destination, Searches: int64(z.Score)})
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func pairMember(source, destination string) (string, error) {
	if strings.Contains(source, ":") || strings.Contains(destination, ":") {
		return "", fmt.Errorf("airport code contains separator: %q -> %q", source, destination)
	}
	return source + ":" + destination, nil
}

func splitMember(member string) (string, string, error) {
	source, destination, ok := strings.Cut(member, ":")
	if !ok {
		return "", "", fmt.Errorf("malformed stats member %q", member)
	}
	return source, destination, nil
}
