// Package memory is an in-process actor store used for local development
// (STORE_DRIVER=memory) and end-to-end tests. It mirrors the Mongo
// repository's semantics, including per-collection email uniqueness.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourista/tourism-api/internal/core/domain"
)

type ActorRepository struct {
	t      domain.ActorType
	mu     sync.RWMutex
	byID   map[string]domain.Actor
	emails map[string]string // email -> id
	order  []string
}

func NewActorRepository(t domain.ActorType) *ActorRepository {
	return &ActorRepository{
		t:      t,
		byID:   make(map[string]domain.Actor),
		emails: make(map[string]string),
	}
}

func (r *ActorRepository) Insert(ctx context.Context, actor domain.Actor) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	email := actor.Creds().Email
	if _, taken := r.emails[email]; taken {
		return domain.ErrEmailTaken
	}
	if actor.ActorID() == "" {
		actor.SetActorID(primitive.NewObjectID().Hex())
	}
	id := actor.ActorID()
	r.byID[id] = clone(actor)
	r.emails[email] = id
	r.order = append(r.order, id)
	return nil
}

func (r *ActorRepository) FindByID(ctx context.Context, id string) (domain.Actor, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	return clone(a), nil
}

func (r *ActorRepository) FindByEmail(ctx context.Context, email string) (domain.Actor, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *ActorRepository) Replace(ctx context.Context, actor domain.Actor) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := actor.ActorID()
	cur, ok := r.byID[id]
	if !ok {
		return domain.ErrActorNotFound
	}
	email := actor.Creds().Email
	if owner, taken := r.emails[email]; taken && owner != id {
		return domain.ErrEmailTaken
	}

	next := clone(actor)
	next.Creds().Tokens = slices.Clone(cur.Creds().Tokens)
	if l, ok := cur.(domain.Liker); ok {
		setLikes(next, slices.Clone(l.LikedPosts()))
	}
	delete(r.emails, cur.Creds().Email)
	r.emails[email] = id
	r.byID[id] = next
	return nil
}

func (r *ActorRepository) PushToken(ctx context.Context, id, token string) error {
	return r.mutate(ctx, id, func(a domain.Actor) error {
		c := a.Creds()
		c.Tokens = append(c.Tokens, token)
		return nil
	})
}

// PullToken removes one occurrence of token.
func (r *ActorRepository) PullToken(ctx context.Context, id, token string) error {
	return r.mutate(ctx, id, func(a domain.Actor) error {
		a.Creds().RemoveToken(token)
		return nil
	})
}

func (r *ActorRepository) ToggleLike(ctx context.Context, id, postID string) (bool, error) {
	var liked bool
	err := r.mutate(ctx, id, func(a domain.Actor) error {
		l, ok := a.(domain.Liker)
		if !ok {
			return domain.ErrForbidden
		}
		likes := l.LikedPosts()
		if i := slices.Index(likes, postID); i >= 0 {
			setLikes(a, slices.Delete(likes, i, i+1))
			return nil
		}
		setLikes(a, append(likes, postID))
		liked = true
		return nil
	})
	return liked, err
}

func (r *ActorRepository) SetField(ctx context.Context, id, field, value string) error {
	return r.mutate(ctx, id, func(a domain.Actor) error {
		switch field {
		case "avatar":
			a.Creds().Avatar = value
			return nil
		case domain.ReserveHotel, domain.ReserveRestaurant, domain.FieldTour:
			u, ok := a.(*domain.User)
			if !ok {
				return fmt.Errorf("field %q not settable on %s", field, r.t)
			}
			switch field {
			case domain.ReserveHotel:
				u.Hotel = value
			case domain.ReserveRestaurant:
				u.Restaurant = value
			default:
				u.Tour = value
			}
			return nil
		}
		return fmt.Errorf("field %q not settable on %s", field, r.t)
	})
}

func (r *ActorRepository) List(ctx context.Context, limit int) ([]domain.Actor, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Actor, 0, min(limit, len(r.order)))
	for _, id := range r.order {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, clone(r.byID[id]))
	}
	return out, nil
}

// ListByTour returns the users whose tour is tourID, in insertion order.
func (r *ActorRepository) ListByTour(ctx context.Context, tourID string, limit int) ([]domain.Actor, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Actor
	for _, id := range r.order {
		if limit > 0 && len(out) == limit {
			break
		}
		if u, ok := r.byID[id].(*domain.User); ok && tourID != "" && u.Tour == tourID {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

func (r *ActorRepository) Delete(ctx context.Context, id string) (domain.Actor, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	delete(r.byID, id)
	delete(r.emails, a.Creds().Email)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
	return a, nil
}

func (r *ActorRepository) mutate(ctx context.Context, id string, fn func(domain.Actor) error) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.ErrActorNotFound
	}
	return fn(a)
}

func alive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func setLikes(a domain.Actor, likes []string) {
	switch v := a.(type) {
	case *domain.User:
		v.Likes = likes
	case *domain.Tourguide:
		v.Likes = likes
	}
}

// clone copies an actor so callers never share slices with the store.
func clone(a domain.Actor) domain.Actor {
	switch v := a.(type) {
	case *domain.User:
		c := *v
		c.Tokens = slices.Clone(v.Tokens)
		c.Likes = slices.Clone(v.Likes)
		return &c
	case *domain.Tourguide:
		c := *v
		c.Tokens = slices.Clone(v.Tokens)
		c.Likes = slices.Clone(v.Likes)
		return &c
	case *domain.Admin:
		c := *v
		c.Tokens = slices.Clone(v.Tokens)
		return &c
	}
	return a
}
