package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

// AnswerKeyCache caches answer keys in Redis (one JSON value per question)
// and falls back to a loader on cache miss. Keys are stored as:
// SET answerkey:{questionID} {json}
type AnswerKeyCache struct {
	client *redis.Client
	loader memory.AnswerKeyLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

var _ app.AnswerKeySource = (*AnswerKeyCache)(nil)

func NewAnswerKeyCache(client *redis.Client, loader memory.AnswerKeyLoader, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *AnswerKeyCache) Key(ctx context.Context, questionID string) (domain.AnswerKey, error) {
	cacheKey := c.cacheKey(questionID)

	if key, ok := c.fromCache(ctx, cacheKey); ok {
		return key, nil
	}

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if key, ok := c.fromCache(ctx, cacheKey); ok {
			return key, nil
		}

		key, err := c.loader.LoadKey(ctx, questionID)
		if err != nil {
			return domain.AnswerKey{}, err
		}

		if raw, err := json.Marshal(key); err == nil {
			_ = c.client.Set(ctx, cacheKey, raw, c.ttlWithJitter()).Err()
		}
		return key, nil
	})
	if err != nil {
		return domain.AnswerKey{}, err
	}
	return result.(domain.AnswerKey), nil
}

// Invalidate drops the cached key so the next lookup reloads it. Called after
// a question edit changes the correct answer or marks.
func (c *AnswerKeyCache) Invalidate(ctx context.Context, questionID string) {
	_ = c.client.Del(ctx, c.cacheKey(questionID)).Err()
}

func (c *AnswerKeyCache) fromCache(ctx context.Context, cacheKey string) (domain.AnswerKey, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return domain.AnswerKey{}, false
	}
	var key domain.AnswerKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return domain.AnswerKey{}, false
	}
	return key, true
}

func (c *AnswerKeyCache) cacheKey(questionID string) string {
	return "answerkey:" + questionID
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
