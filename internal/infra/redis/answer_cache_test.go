package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func TestAnswerKeyCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		AnswerKeyLoader: memory.NewStaticKeyLoader(map[string]domain.AnswerKey{
			"q-1": sampleKey(),
		}),
	}
	cache := NewAnswerKeyCache(client, loader, time.Minute)

	key, err := cache.Key(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if key.CorrectAnswer != "4" {
		t.Fatalf("expected correct answer 4, got %q", key.CorrectAnswer)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit cache, loader not incremented.
	_, _ = cache.Key(context.Background(), "q-1")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestAnswerKeyCacheMissingQuestion(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewAnswerKeyCache(newClient(mr), memory.NewStaticKeyLoader(nil), time.Minute)

	_, err = cache.Key(context.Background(), "nope")
	if err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestAnswerKeyCacheInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		AnswerKeyLoader: memory.NewStaticKeyLoader(map[string]domain.AnswerKey{
			"q-1": sampleKey(),
		}),
	}
	cache := NewAnswerKeyCache(newClient(mr), loader, time.Minute)

	_, _ = cache.Key(context.Background(), "q-1")
	cache.Invalidate(context.Background(), "q-1")
	_, _ = cache.Key(context.Background(), "q-1")

	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.AnswerKeyLoader
	calls int
}

func (l *countingLoader) LoadKey(ctx context.Context, questionID string) (domain.AnswerKey, error) {
	l.calls++
	return l.AnswerKeyLoader.LoadKey(ctx, questionID)
}

func sampleKey() domain.AnswerKey {
	return domain.AnswerKey{
		QuestionID:    "q-1",
		Type:          domain.MultipleChoice,
		CorrectAnswer: "4",
		Marks:         2,
		NegativeMarks: 0.5,
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
