package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

type memAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	err    error
}

func (r *memAuditRepo) InsertEvent(_ context.Context, e *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *memAuditRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}

func TestAuditDispatcher_PersistsInOrderPerAccount(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(3, repo, zerolog.Nop())

	// Enqueue before starting so nothing is dropped and shutdown drains all.
	for i := 0; i < 20; i++ {
		d.Record(domain.AuthEvent{Type: domain.EventLogin, Email: fmt.Sprintf("u%d@x.com", i%4), Outcome: fmt.Sprint(i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	events := repo.snapshot()
	require.Len(t, events, 20)

	last := map[string]int{}
	for _, e := range events {
		var n int
		_, err := fmt.Sscan(e.Outcome, &n)
		require.NoError(t, err)
		if prev, ok := last[e.Email]; ok {
			assert.Greater(t, n, prev, "events for %s out of order", e.Email)
		}
		last[e.Email] = n
	}
}

func TestAuditDispatcher_DropsWhenFull(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())

	// Workers are not running, so the single queue fills up.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuthEvent{Type: domain.EventRegister, Email: "a@x.com"})
	}
	assert.Len(t, d.workers[0], channelBuffer)
}

func TestAuditDispatcher_StoreFailureDoesNotStopWorker(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("unavailable")}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())

	d.Record(domain.AuthEvent{Type: domain.EventLogin, Email: "a@x.com"})
	d.Record(domain.AuthEvent{Type: domain.EventLogin, Email: "a@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	assert.Empty(t, d.workers[0])
	assert.Empty(t, repo.snapshot())
}

func TestShardKey(t *testing.T) {
	assert.Equal(t, "a@x.com", shardKey(domain.AuthEvent{Email: "a@x.com", UserID: "u1"}))
	assert.Equal(t, "u1", shardKey(domain.AuthEvent{UserID: "u1"}))
}
