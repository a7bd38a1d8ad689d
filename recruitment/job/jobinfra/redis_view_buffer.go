package jobinfra

import (
	"context"
	"strconv"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
)

// RedisViewBuffer accumulates view increments in a Redis hash so the hot
// path never touches the jobs table. Flush moves the totals into a ViewStore.
type RedisViewBuffer struct {
	client *redis.Client
	key    string
}

// NewRedisViewBuffer creates a buffer writing to the hash at key
func NewRedisViewBuffer(client *redis.Client, key string) *RedisViewBuffer {
	return &RedisViewBuffer{
		client: client,
		key:    key,
	}
}

func (b *RedisViewBuffer) drainingKey() string {
	return b.key + ":draining"
}

// IncrementViews adds one pending view per id in a single round trip
func (b *RedisViewBuffer) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	if len(ids) == 0 {
		return nil
	}
	pipe := b.client.Pipeline()
	for _, id := range ids {
		pipe.HIncrBy(ctx, b.key, id.String(), 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "buffer views for %d jobs", len(ids))
	}
	return nil
}

// Flush applies the pending counts to store and returns how many jobs were
// updated. The pending hash is renamed first so increments arriving during
// the flush start a fresh hash. A draining hash left by a failed flush is
// retried before anything new is taken.
func (b *RedisViewBuffer) Flush(ctx context.Context, store job.ViewStore) (int, error) {
	draining := b.drainingKey()

	leftover, err := b.client.Exists(ctx, draining).Result()
	if err != nil {
		return 0, errors.Wrap(err, "check draining views")
	}
	if leftover == 0 {
		if err := b.client.Rename(ctx, b.key, draining).Err(); err != nil {
			if isNoSuchKey(err) {
				return 0, nil
			}
			return 0, errors.Wrap(err, "rotate pending views")
		}
	}

	raw, err := b.client.HGetAll(ctx, draining).Result()
	if err != nil {
		return 0, errors.Wrap(err, "read draining views")
	}

	counts := make(map[kernel.JobID]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		counts[kernel.JobID(id)] = n
	}

	if err := store.AddViews(ctx, counts); err != nil {
		return 0, errors.Wrap(err, "apply buffered views")
	}
	if err := b.client.Del(ctx, draining).Err(); err != nil {
		return len(counts), errors.Wrap(err, "clear draining views")
	}
	return len(counts), nil
}

// Pending returns the number of jobs with buffered views
func (b *RedisViewBuffer) Pending(ctx context.Context) (int64, error) {
	n, err := b.client.HLen(ctx, b.key).Result()
	if err != nil {
		return 0, errors.Wrap(err, "count pending views")
	}
	return n, nil
}

// Ping checks if Redis connection is alive
func (b *RedisViewBuffer) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func isNoSuchKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such key")
}
