package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

// AnswerKeyLoader fetches an answer key from a backing store.
type AnswerKeyLoader interface {
	LoadKey(ctx context.Context, questionID string) (domain.AnswerKey, error)
}

// AnswerKeyCache caches answer keys with TTL so the submit path does not hit
// the database on every evaluation.
type AnswerKeyCache struct {
	loader AnswerKeyLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedKey
}

type cachedKey struct {
	key       domain.AnswerKey
	expiresAt time.Time
}

var _ app.AnswerKeySource = (*AnswerKeyCache)(nil)

func NewAnswerKeyCache(loader AnswerKeyLoader, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedKey),
	}
}

func (c *AnswerKeyCache) Key(ctx context.Context, questionID string) (domain.AnswerKey, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[questionID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.key, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[questionID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.key, nil
		}
		c.mu.RUnlock()

		key, err := c.loader.LoadKey(ctx, questionID)
		if err != nil {
			return domain.AnswerKey{}, err
		}

		c.mu.Lock()
		c.cache[questionID] = cachedKey{
			key:       key,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return domain.AnswerKey{}, err
	}
	return result.(domain.AnswerKey), nil
}

// Invalidate drops one cached key, used after question updates.
func (c *AnswerKeyCache) Invalidate(_ context.Context, questionID string) {
	c.mu.Lock()
	delete(c.cache, questionID)
	c.mu.Unlock()
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// RepositoryKeyLoader derives answer keys straight from a question
// repository. It is the loader used when no dedicated storage loader is
// wired, and in tests.
type RepositoryKeyLoader struct {
	questions app.QuestionRepository
}

func NewRepositoryKeyLoader(questions app.QuestionRepository) *RepositoryKeyLoader {
	return &RepositoryKeyLoader{questions: questions}
}

func (l *RepositoryKeyLoader) LoadKey(ctx context.Context, questionID string) (domain.AnswerKey, error) {
	q, err := l.questions.GetByID(ctx, questionID)
	if err != nil {
		return domain.AnswerKey{}, err
	}
	return q.Key(), nil
}

// StaticKeyLoader is a loader backed by a fixed map (useful for tests/demos).
type StaticKeyLoader struct {
	keys map[string]domain.AnswerKey
}

func NewStaticKeyLoader(keys map[string]domain.AnswerKey) *StaticKeyLoader {
	return &StaticKeyLoader{keys: keys}
}

func (l *StaticKeyLoader) LoadKey(_ context.Context, questionID string) (domain.AnswerKey, error) {
	if key, ok := l.keys[questionID]; ok {
		return key, nil
	}
	return domain.AnswerKey{}, domain.ErrQuestionNotFound
}
