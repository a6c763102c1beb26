package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
	"github.com/tourista/tourism-api/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

type fixture struct {
	repos  ports.ActorRepositories
	store  *CredentialStore
	tokens *TokenAuthority
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := ports.ActorRepositories{}
	for _, at := range domain.ActorTypes {
		repos[at] = memory.NewActorRepository(at)
	}
	return &fixture{
		repos:  repos,
		store:  NewCredentialStore(repos, NewHasher(bcrypt.MinCost, 2), zerolog.Nop()),
		tokens: NewTokenAuthority(repos, testSecret, time.Hour),
	}
}

func (f *fixture) register(t *testing.T, at domain.ActorType, email, password string) domain.Actor {
	t.Helper()
	actor, err := f.store.Register(context.Background(), at, ports.RegisterInput{
		Name:     "Test " + string(at),
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", at, err)
	}
	return actor
}

func (f *fixture) stored(t *testing.T, actor domain.Actor) domain.Actor {
	t.Helper()
	got, err := f.repos[actor.Type()].FindByID(context.Background(), actor.ActorID())
	if err != nil {
		t.Fatalf("load %s: %v", actor.ActorID(), err)
	}
	return got
}

// unavailableRepo fails every call the way a timed-out store does.
type unavailableRepo struct{ ports.ActorRepository }

func (unavailableRepo) FindByID(context.Context, string) (domain.Actor, error) {
	return nil, domain.ErrStoreUnavailable
}

func (unavailableRepo) FindByEmail(context.Context, string) (domain.Actor, error) {
	return nil, domain.ErrStoreUnavailable
}

type stubThrottle struct {
	allowed  bool
	err      error
	failures map[string]int
	resets   map[string]int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{allowed: true, failures: map[string]int{}, resets: map[string]int{}}
}

func (s *stubThrottle) Allowed(context.Context, string) (bool, error) { return s.allowed, s.err }

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures[email]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets[email]++
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingSink) Record(e domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) kinds() []domain.AuthEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}
