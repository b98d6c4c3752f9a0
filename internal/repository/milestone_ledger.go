package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// MilestoneLedger remembers which (challenge, day) milestone notifications have
// gone out. MarkSent reports true only for the first caller.
type MilestoneLedger interface {
	MarkSent(ctx context.Context, challengeID uint, day int) (bool, error)
}

func milestoneKey(challengeID uint, day int) string {
	return fmt.Sprintf("milestone:%d:day:%d", challengeID, day)
}

type RedisMilestoneLedger struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMilestoneLedger(client *redis.Client, ttl time.Duration) *RedisMilestoneLedger {
	return &RedisMilestoneLedger{Client: client, TTL: ttl}
}

func (l *RedisMilestoneLedger) MarkSent(ctx context.Context, challengeID uint, day int) (bool, error) {
	return l.Client.SetNX(ctx, milestoneKey(challengeID, day), time.Now().Unix(), l.TTL).Result()
}

type MemoryMilestoneLedger struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	sent map[string]time.Time
}

func NewMemoryMilestoneLedger(ttl time.Duration) *MemoryMilestoneLedger {
	return &MemoryMilestoneLedger{ttl: ttl, now: time.Now, sent: make(map[string]time.Time)}
}

func (l *MemoryMilestoneLedger) MarkSent(_ context.Context, challengeID uint, day int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, at := range l.sent {
		if now.Sub(at) > l.ttl {
			delete(l.sent, k)
		}
	}

	key := milestoneKey(challengeID, day)
	if _, ok := l.sent[key]; ok {
		return false, nil
	}
	l.sent[key] = now
	return true, nil
}
