package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"github.com/S-Dhruv/codingAssistant/internal/app"
)

const quizTTL = 5 * time.Minute

// QuizCache is a cache-aside layer over Redis for quiz payloads, saving
// a DB round trip when every room member fetches the same quiz. Cache
// faults degrade to the database, never to an error.
type QuizCache struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewQuizCache connects to redis and verifies connectivity
func NewQuizCache(ctx context.Context, cfg app.Config, log *slog.Logger) (*QuizCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &QuizCache{rdb: rdb, log: log}, nil
}

// Get returns the cached questions for a room, if any.
func (c *QuizCache) Get(ctx context.Context, roomCode string) ([]QuizQuestion, bool) {
	raw, err := c.rdb.Get(ctx, quizKey(roomCode)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("quizcache.get", "room", roomCode, "err", err)
		}
		return nil, false
	}
	var qs []QuizQuestion
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, false
	}
	return qs, true
}

// Set stores the questions for a room with a TTL.
func (c *QuizCache) Set(ctx context.Context, roomCode string, qs []QuizQuestion) {
	raw, err := json.Marshal(qs)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, quizKey(roomCode), raw, quizTTL).Err(); err != nil {
		c.log.Debug("quizcache.set", "room", roomCode, "err", err)
	}
}

// Invalidate drops the cached quiz after a save.
func (c *QuizCache) Invalidate(ctx context.Context, roomCode string) {
	if err := c.rdb.Del(ctx, quizKey(roomCode)).Err(); err != nil {
		c.log.Debug("quizcache.del", "room", roomCode, "err", err)
	}
}

// Close shuts down the redis connection
func (c *QuizCache) Close() { _ = c.rdb.Close() }

// key namespacing for quiz payloads
func quizKey(roomCode string) string { return "quiz:" + roomCode }
