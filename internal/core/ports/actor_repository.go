package ports

import (
	"context"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// ActorRepository persists actors of a single type. Implementations apply a
// request-scoped timeout to every call and report timeouts or connection
// failures as domain.ErrStoreUnavailable.
type ActorRepository interface {
	// Insert stores a new actor and assigns its ID. A duplicate email yields domain.ErrEmailTaken.
	Insert(ctx context.Context, actor domain.Actor) error
	FindByID(ctx context.Context, id string) (domain.Actor, error)
	// FindByEmail matches the normalized (trimmed, lowercased) email.
	FindByEmail(ctx context.Context, email string) (domain.Actor, error)
	// Replace overwrites the stored document with actor. Tokens and likes are
	// owned by PushToken/PullToken and ToggleLike and are left as stored.
	Replace(ctx context.Context, actor domain.Actor) error
	PushToken(ctx context.Context, id, token string) error
	// PullToken removes one occurrence of token from the actor's list. Absent
	// tokens are not an error.
	PullToken(ctx context.Context, id, token string) error
	// ToggleLike adds postID to the likes set, or removes it when already present.
	// It reports whether the post is liked after the call.
	ToggleLike(ctx context.Context, id, postID string) (bool, error)
	// SetField sets a single reference field (avatar, hotel, restaurant, tour).
	// An empty value clears it.
	SetField(ctx context.Context, id, field, value string) error
	List(ctx context.Context, limit int) ([]domain.Actor, error)
	// ListByTour returns users whose tour is tourID. An empty tourID matches none.
	ListByTour(ctx context.Context, tourID string, limit int) ([]domain.Actor, error)
	Delete(ctx context.Context, id string) (domain.Actor, error)
}

// ActorRepositories resolves the repository for each actor type.
type ActorRepositories map[domain.ActorType]ActorRepository

// For returns the repository for t or domain.ErrActorNotFound when none is registered.
func (r ActorRepositories) For(t domain.ActorType) (ActorRepository, error) {
	repo, ok := r[t]
	if !ok || repo == nil {
		return nil, domain.ErrActorNotFound
	}
	return repo, nil
}
