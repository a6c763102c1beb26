package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

const maxListLimit = 100

type profileService struct {
	repos ports.ActorRepositories
	store ports.CredentialStore
	log   zerolog.Logger
}

func NewProfileService(repos ports.ActorRepositories, store ports.CredentialStore, log zerolog.Logger) ports.ProfileService {
	return &profileService{repos: repos, store: store, log: log}
}

// Update checks every key against the allowlist and every value against its
// format before touching the actor, so a rejected request changes nothing.
func (s *profileService) Update(ctx context.Context, actor domain.Actor, fields map[string]any) (domain.Actor, error) {
	if len(fields) == 0 {
		return nil, domain.ErrInvalidUpdate
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !domain.IsAllowedUpdate(actor.Type(), k) {
			return nil, domain.ErrInvalidUpdate
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]string, len(fields))
	for _, k := range keys {
		v, ok := fields[k].(string)
		if !ok {
			return nil, domain.NewValidationError(k, "must be a string")
		}
		if err := checkField(k, v); err != nil {
			return nil, err
		}
		values[k] = v
	}

	if email, ok := values["email"]; ok {
		if err := s.checkEmailFree(ctx, actor, domain.NormalizeEmail(email)); err != nil {
			return nil, err
		}
	}

	for _, k := range keys {
		actor.Apply(k, values[k])
	}
	if err := s.store.Save(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *profileService) checkEmailFree(ctx context.Context, actor domain.Actor, email string) error {
	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return err
	}
	other, err := repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrActorNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("update: %w", err)
	case other.ActorID() != actor.ActorID():
		return domain.ErrEmailTaken
	}
	return nil
}

func (s *profileService) ToggleLike(ctx context.Context, actor domain.Actor, postID string) (*ports.LikeResult, error) {
	if _, ok := actor.(domain.Liker); !ok {
		return nil, domain.ErrForbidden
	}
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return nil, err
	}
	liked, err := repo.ToggleLike(ctx, actor.ActorID(), postID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	fresh, err := repo.FindByID(ctx, actor.ActorID())
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return &ports.LikeResult{
		PostID: postID,
		Liked:  liked,
		Likes:  fresh.(domain.Liker).LikedPosts(),
	}, nil
}

// Reserve stores a single hotel or restaurant reference on a user.
func (s *profileService) Reserve(ctx context.Context, actor domain.Actor, kind, ref string) (domain.Actor, error) {
	user, ok := actor.(*domain.User)
	if !ok {
		return nil, domain.ErrForbidden
	}
	if kind != domain.ReserveHotel && kind != domain.ReserveRestaurant {
		return nil, domain.NewValidationError("kind", "must be hotel or restaurant")
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.NewValidationError(kind, "is required")
	}

	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return nil, err
	}
	if err := repo.SetField(ctx, user.ID, kind, ref); err != nil {
		return nil, fmt.Errorf("reserve %s: %w", kind, err)
	}
	if kind == domain.ReserveHotel {
		user.Hotel = ref
	} else {
		user.Restaurant = ref
	}
	return user, nil
}

// JoinTour records tourID as the user's tour, replacing any previous one.
func (s *profileService) JoinTour(ctx context.Context, actor domain.Actor, tourID string) (domain.Actor, error) {
	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	return s.setTour(ctx, actor, tourID)
}

// LeaveTour clears the user's tour. A user without one gets a validation error.
func (s *profileService) LeaveTour(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	if user, ok := actor.(*domain.User); ok && user.Tour == "" {
		return nil, domain.NewValidationError(domain.FieldTour, "is not set")
	}
	return s.setTour(ctx, actor, "")
}

func (s *profileService) setTour(ctx context.Context, actor domain.Actor, tourID string) (domain.Actor, error) {
	user, ok := actor.(*domain.User)
	if !ok {
		return nil, domain.ErrForbidden
	}
	repo, err := s.repos.For(domain.ActorUser)
	if err != nil {
		return nil, err
	}
	if err := repo.SetField(ctx, user.ID, domain.FieldTour, tourID); err != nil {
		return nil, fmt.Errorf("set tour: %w", err)
	}
	user.Tour = tourID
	return user, nil
}

// TourMembers lists the users who joined tourID.
func (s *profileService) TourMembers(ctx context.Context, tourID string) ([]domain.Actor, error) {
	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	repo, err := s.repos.For(domain.ActorUser)
	if err != nil {
		return nil, err
	}
	users, err := repo.ListByTour(ctx, tourID, maxListLimit)
	if err != nil {
		return nil, fmt.Errorf("tour members: %w", err)
	}
	return users, nil
}

// ResetAvatar points the actor back at the default avatar.
func (s *profileService) ResetAvatar(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return nil, err
	}
	if err := repo.SetField(ctx, actor.ActorID(), "avatar", domain.DefaultAvatar); err != nil {
		return nil, fmt.Errorf("reset avatar: %w", err)
	}
	actor.Creds().Avatar = domain.DefaultAvatar
	return actor, nil
}

func (s *profileService) List(ctx context.Context, t domain.ActorType, limit int) ([]domain.Actor, error) {
	repo, err := s.repos.For(t)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	actors, err := repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Collection(), err)
	}
	return actors, nil
}

func (s *profileService) Get(ctx context.Context, t domain.ActorType, id string) (domain.Actor, error) {
	repo, err := s.repos.For(t)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (s *profileService) Delete(ctx context.Context, t domain.ActorType, id string) (domain.Actor, error) {
	repo, err := s.repos.For(t)
	if err != nil {
		return nil, err
	}
	actor, err := repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("actor_type", string(t)).Str("actor_id", id).Msg("actor deleted")
	return actor, nil
}
