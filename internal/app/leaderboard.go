package app

import (
	"sync"

	"quiz-contest-service/internal/domain"
)

// LeaderboardHub fans standings snapshots out to websocket subscribers, one
// feed per quiz. Feeds are created on first subscribe and dropped when the
// last subscriber cancels.
type LeaderboardHub struct {
	mu    sync.RWMutex
	feeds map[string]map[chan domain.Leaderboard]struct{}
}

func NewLeaderboardHub() *LeaderboardHub {
	return &LeaderboardHub{
		feeds: make(map[string]map[chan domain.Leaderboard]struct{}),
	}
}

// Subscribe returns a channel receiving standings for a quiz. The caller must
// invoke the returned cancel function to avoid leaks.
func (h *LeaderboardHub) Subscribe(quizID string) (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	h.mu.Lock()
	subs, ok := h.feeds[quizID]
	if !ok {
		subs = make(map[chan domain.Leaderboard]struct{})
		h.feeds[quizID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.feeds[quizID]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.feeds, quizID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish broadcasts a snapshot to every subscriber of the quiz. Slow
// subscribers have their stale pending update replaced rather than blocking
// the broadcast; if the freed slot is taken by a concurrent publish the
// update is dropped, keeping Publish non-blocking under the lock.
func (h *LeaderboardHub) Publish(lb domain.Leaderboard) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.feeds[lb.QuizID] {
		select {
		case ch <- lb:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- lb:
			default:
			}
		}
	}
}

// SubscriberCount reports the live subscribers for a quiz feed.
func (h *LeaderboardHub) SubscriberCount(quizID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds[quizID])
}
