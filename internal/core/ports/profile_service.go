package ports

import (
	"context"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// LikeResult reports the like state of a post after a toggle.
type LikeResult struct {
	PostID string
	Liked  bool
	Likes  []string
}

// ProfileService covers profile reads and mutations for authenticated actors.
type ProfileService interface {
	// Update applies fields after checking every key against the actor type's
	// allowlist. Nothing is mutated when any key is rejected.
	Update(ctx context.Context, actor domain.Actor, fields map[string]any) (domain.Actor, error)
	ToggleLike(ctx context.Context, actor domain.Actor, postID string) (*LikeResult, error)
	Reserve(ctx context.Context, actor domain.Actor, kind, ref string) (domain.Actor, error)
	ResetAvatar(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	JoinTour(ctx context.Context, actor domain.Actor, tourID string) (domain.Actor, error)
	LeaveTour(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	TourMembers(ctx context.Context, tourID string) ([]domain.Actor, error)
	List(ctx context.Context, t domain.ActorType, limit int) ([]domain.Actor, error)
	Get(ctx context.Context, t domain.ActorType, id string) (domain.Actor, error)
	Delete(ctx context.Context, t domain.ActorType, id string) (domain.Actor, error)
}
