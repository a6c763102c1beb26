package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
)

type memAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (m *memAudit) Insert(_ context.Context, e domain.AuthEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func TestDispatcher_PersistsInOrderPerEmail(t *testing.T) {
	repo := &memAudit{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	kinds := []domain.AuthEventKind{domain.EventRegister, domain.EventLogin, domain.EventLogout}
	for _, k := range kinds {
		d.Record(domain.AuthEvent{Kind: k, Email: "ana@example.com"})
	}
	d.Close()

	if len(repo.events) != len(kinds) {
		t.Fatalf("expected %d events, got %d", len(kinds), len(repo.events))
	}
	for i, k := range kinds {
		if repo.events[i].Kind != k {
			t.Fatalf("event %d: expected %s, got %s", i, k, repo.events[i].Kind)
		}
	}
}

func TestDispatcher_DropsWhenFullOrClosed(t *testing.T) {
	d := NewDispatcher(1, &memAudit{}, zerolog.Nop())
	// not started: the queue fills up
	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.AuthEvent{Kind: domain.EventLogin, Email: "a@b.io"})
	}
	if d.Depth() != channelBuffer {
		t.Fatalf("expected depth %d, got %d", channelBuffer, d.Depth())
	}
	if d.Dropped() != 5 {
		t.Fatalf("expected 5 dropped, got %d", d.Dropped())
	}

	d.Start(context.Background())
	d.Close()
	d.Record(domain.AuthEvent{Kind: domain.EventLogin})
	if d.Dropped() != 6 {
		t.Fatalf("expected record after close to be dropped, got %d", d.Dropped())
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(8, &memAudit{}, zerolog.Nop())
	first := d.shardIndex("ana@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("ana@example.com"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
}
