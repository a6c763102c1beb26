package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// Hasher wraps bcrypt with a concurrency bound so hashing load from many
// simultaneous signups or logins cannot monopolise every CPU.
type Hasher struct {
	cost  int
	sem   *semaphore.Weighted
	wait  time.Duration
	dummy []byte
}

// defaultHashWait bounds how long a request queues for a hashing slot.
const defaultHashWait = 5 * time.Second

// NewHasher returns a Hasher using the given bcrypt cost and at most
// concurrency parallel hash/compare operations. Zero values pick defaults.
func NewHasher(cost, concurrency int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	// compared against on unknown emails so both login failures cost the same.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("tourism-timing-equaliser"), cost)
	return &Hasher{
		cost:  cost,
		sem:   semaphore.NewWeighted(int64(concurrency)),
		wait:  defaultHashWait,
		dummy: dummy,
	}
}

// WithWait sets how long Hash and Compare queue for a slot before giving up.
func (h *Hasher) WithWait(d time.Duration) *Hasher {
	if d > 0 {
		h.wait = d
	}
	return h
}

// Hash returns the bcrypt hash of plain.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether plain matches hash.
func (h *Hasher) Compare(ctx context.Context, hash, plain string) (bool, error) {
	if err := h.acquire(ctx); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	// a malformed stored hash counts as a mismatch, not a server error.
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return false, nil
	}
	return true, nil
}

// CompareDummy burns one comparison's worth of work without a real hash.
func (h *Hasher) CompareDummy(ctx context.Context, plain string) {
	_, _ = h.Compare(ctx, string(h.dummy), plain)
}

func (h *Hasher) acquire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.wait)
	defer cancel()
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: waiting for hasher: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
