package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

func newTestProfileService(f *fixture) ports.ProfileService {
	return NewProfileService(f.repos, f.store, zerolog.Nop())
}

func TestProfileService_Update(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	actor := f.register(t, domain.ActorUser, "ana@example.com", "tango-42x")

	got, err := svc.Update(context.Background(), actor, map[string]any{
		"name":    "Ana Maria",
		"email":   " ANA.M@example.com ",
		"country": "MX",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	u := got.(*domain.User)
	if u.Name != "Ana Maria" || u.Email != "ana.m@example.com" || u.Country != "MX" {
		t.Fatalf("unexpected result: %+v", u)
	}
	stored := f.stored(t, actor).(*domain.User)
	if stored.Email != "ana.m@example.com" || stored.Country != "MX" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestProfileService_Update_DisallowedFieldMutatesNothing(t *testing.T) {
	cases := map[domain.ActorType]map[string]any{
		domain.ActorUser:      {"name": "New", "license": "L-1"},
		domain.ActorTourguide: {"name": "New", "country": "MX"},
		domain.ActorAdmin:     {"name": "New", "phone": "5551234567"},
	}
	for at, fields := range cases {
		t.Run(string(at), func(t *testing.T) {
			f := newFixture(t)
			svc := newTestProfileService(f)
			actor := f.register(t, at, "someone@example.com", "tango-42x")
			before := f.stored(t, actor).Creds().Name

			_, err := svc.Update(context.Background(), actor, fields)
			if !errors.Is(err, domain.ErrInvalidUpdate) {
				t.Fatalf("expected ErrInvalidUpdate, got %v", err)
			}
			if actor.Creds().Name != before || f.stored(t, actor).Creds().Name != before {
				t.Fatal("actor mutated by rejected update")
			}
		})
	}
}

func TestProfileService_Update_InvalidValues(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	actor := f.register(t, domain.ActorUser, "ana@example.com", "tango-42x")
	f.register(t, domain.ActorUser, "taken@example.com", "tango-42x")
	ctx := context.Background()

	if _, err := svc.Update(ctx, actor, map[string]any{"name": 42}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-string, got %v", err)
	}
	if _, err := svc.Update(ctx, actor, map[string]any{"password": "password123"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for weak password, got %v", err)
	}
	if _, err := svc.Update(ctx, actor, map[string]any{"email": "taken@example.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Update(ctx, actor, map[string]any{}); !errors.Is(err, domain.ErrInvalidUpdate) {
		t.Fatalf("expected ErrInvalidUpdate for empty body, got %v", err)
	}
	// re-submitting your own email is fine
	if _, err := svc.Update(ctx, actor, map[string]any{"email": "ana@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProfileService_Update_PasswordChange(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	ctx := context.Background()
	actor := f.register(t, domain.ActorTourguide, "guide@example.com", "tango-42x")

	if _, err := svc.Update(ctx, actor, map[string]any{"password": "foxtrot-99"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := f.store.AuthenticateByCredentials(ctx, domain.ActorTourguide, "guide@example.com", "tango-42x"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := f.store.AuthenticateByCredentials(ctx, domain.ActorTourguide, "guide@example.com", "foxtrot-99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestProfileService_ToggleLike(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	ctx := context.Background()
	user := f.register(t, domain.ActorUser, "ana@example.com", "tango-42x")

	res, err := svc.ToggleLike(ctx, user, "post-1")
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !res.Liked || len(res.Likes) != 1 || res.Likes[0] != "post-1" {
		t.Fatalf("unexpected like result: %+v", res)
	}
	res, _ = svc.ToggleLike(ctx, user, "post-1")
	if res.Liked || len(res.Likes) != 0 {
		t.Fatalf("unexpected unlike result: %+v", res)
	}

	admin := f.register(t, domain.ActorAdmin, "root@example.com", "tango-42x")
	if _, err := svc.ToggleLike(ctx, admin, "post-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
}

func TestProfileService_ReserveAndAvatar(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	ctx := context.Background()
	user := f.register(t, domain.ActorUser, "ana@example.com", "tango-42x")

	if _, err := svc.Reserve(ctx, user, domain.ReserveHotel, "hotel-7"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := f.stored(t, user).(*domain.User).Hotel; got != "hotel-7" {
		t.Fatalf("expected hotel-7, got %q", got)
	}
	if _, err := svc.Reserve(ctx, user, "spa", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown kind, got %v", err)
	}

	guide := f.register(t, domain.ActorTourguide, "guide@example.com", "tango-42x")
	if _, err := svc.Reserve(ctx, guide, domain.ReserveHotel, "hotel-7"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	guide.Creds().Avatar = "custom.png"
	got, err := svc.ResetAvatar(ctx, guide)
	if err != nil || got.Creds().Avatar != domain.DefaultAvatar {
		t.Fatalf("reset avatar: %v %+v", err, got)
	}
}

func TestProfileService_ListGetDelete(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	ctx := context.Background()
	for _, e := range []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io", "e@x.io"} {
		f.register(t, domain.ActorTourguide, e, "tango-42x")
	}

	month, err := svc.List(ctx, domain.ActorTourguide, 4)
	if err != nil || len(month) != 4 {
		t.Fatalf("expected 4 guides, got %d (%v)", len(month), err)
	}
	all, _ := svc.List(ctx, domain.ActorTourguide, 0)
	if len(all) != 5 {
		t.Fatalf("expected 5 guides, got %d", len(all))
	}

	id := all[0].ActorID()
	if _, err := svc.Get(ctx, domain.ActorTourguide, id); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.Delete(ctx, domain.ActorTourguide, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, domain.ActorTourguide, id); !errors.Is(err, domain.ErrActorNotFound) {
		t.Fatalf("expected ErrActorNotFound, got %v", err)
	}
}

func TestProfileService_JoinLeaveTour(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	ctx := context.Background()
	ana := f.register(t, domain.ActorUser, "ana@example.com", "tango-42x")
	bo := f.register(t, domain.ActorUser, "bo@example.com", "tango-42x")

	if _, err := svc.JoinTour(ctx, ana, "tour-1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.JoinTour(ctx, bo, "tour-1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	// joining another tour replaces the first
	got, err := svc.JoinTour(ctx, ana, " tour-2 ")
	if err != nil {
		t.Fatalf("switch tour: %v", err)
	}
	if got.(*domain.User).Tour != "tour-2" || f.stored(t, ana).(*domain.User).Tour != "tour-2" {
		t.Fatalf("tour not switched: %+v", f.stored(t, ana))
	}

	members, err := svc.TourMembers(ctx, "tour-1")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0].ActorID() != bo.ActorID() {
		t.Fatalf("unexpected tour-1 members: %v", members)
	}

	if _, err := svc.LeaveTour(ctx, ana); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if f.stored(t, ana).(*domain.User).Tour != "" {
		t.Fatal("tour not cleared")
	}
	if _, err := svc.LeaveTour(ctx, ana); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("leaving twice: expected ErrValidation, got %v", err)
	}
	if _, err := svc.JoinTour(ctx, bo, "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank tour id: expected ErrValidation, got %v", err)
	}
}

func TestProfileService_JoinTour_UsersOnly(t *testing.T) {
	f := newFixture(t)
	svc := newTestProfileService(f)
	guide := f.register(t, domain.ActorTourguide, "guide@example.com", "tango-42x")

	if _, err := svc.JoinTour(context.Background(), guide, "tour-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
