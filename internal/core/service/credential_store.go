package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

// CredentialStore persists actors and their credentials. It is the only
// component that sees plaintext passwords, and only long enough to hash them.
type CredentialStore struct {
	repos  ports.ActorRepositories
	hasher *Hasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewCredentialStore(repos ports.ActorRepositories, hasher *Hasher, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{
		repos:  repos,
		hasher: hasher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the signup fields, rejects an email already used within
// the same actor type, and stores a new actor with a hashed password, no
// tokens and the default avatar.
func (s *CredentialStore) Register(ctx context.Context, t domain.ActorType, in ports.RegisterInput) (domain.Actor, error) {
	if !t.Valid() {
		return nil, domain.NewValidationError("type", "is not a known actor type")
	}
	email := domain.NormalizeEmail(in.Email)
	for _, err := range []error{
		checkName(in.Name),
		checkEmail(email),
		domain.CheckPassword(in.Password),
		checkPhone(in.Phone),
	} {
		if err != nil {
			return nil, err
		}
	}

	repo, err := s.repos.For(t)
	if err != nil {
		return nil, err
	}
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrActorNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	actor := newActor(t, in)
	creds := actor.Creds()
	creds.Name = strings.TrimSpace(in.Name)
	creds.Email = email
	creds.Avatar = domain.DefaultAvatar
	creds.Tokens = []string{}
	creds.SetPassword(in.Password)

	if err := s.prepare(ctx, actor); err != nil {
		return nil, err
	}
	if err := repo.Insert(ctx, actor); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("actor_type", string(t)).Str("actor_id", actor.ActorID()).Msg("actor registered")
	return actor, nil
}

func newActor(t domain.ActorType, in ports.RegisterInput) domain.Actor {
	switch t {
	case domain.ActorUser:
		return &domain.User{
			Phone:    in.Phone,
			Country:  in.Country,
			Language: in.Language,
			Likes:    []string{},
		}
	case domain.ActorTourguide:
		return &domain.Tourguide{
			Phone:    in.Phone,
			Language: in.Language,
			License:  in.License,
			Likes:    []string{},
		}
	default:
		return domain.New(t)
	}
}

// AuthenticateByCredentials looks the email up within actor type t and checks
// the password. Unknown email and wrong password are indistinguishable to the
// caller, including in the time taken.
func (s *CredentialStore) AuthenticateByCredentials(ctx context.Context, t domain.ActorType, email, password string) (domain.Actor, error) {
	repo, err := s.repos.For(t)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	actor, err := repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrActorNotFound) {
		s.hasher.CompareDummy(ctx, password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := s.hasher.Compare(ctx, actor.Creds().PasswordHash, domain.NormalizePassword(password))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return actor, nil
}

// Save persists actor. The password is re-hashed only when it was set since
// the actor was loaded; an existing hash is written back untouched.
func (s *CredentialStore) Save(ctx context.Context, actor domain.Actor) error {
	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return err
	}
	if err := s.prepare(ctx, actor); err != nil {
		return err
	}
	if err := repo.Replace(ctx, actor); err != nil {
		return fmt.Errorf("save %s: %w", actor.Type(), err)
	}
	return nil
}

// RevokeToken removes token from the actor's valid-token list. Revoking a
// token that is not in the list is not an error.
func (s *CredentialStore) RevokeToken(ctx context.Context, actor domain.Actor, token string) error {
	repo, err := s.repos.For(actor.Type())
	if err != nil {
		return err
	}
	if err := repo.PullToken(ctx, actor.ActorID(), token); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	actor.Creds().RemoveToken(token)
	return nil
}

// prepare runs before every write: it hashes a staged password and stamps timestamps.
func (s *CredentialStore) prepare(ctx context.Context, actor domain.Actor) error {
	creds := actor.Creds()
	if creds.PasswordModified() {
		plain := domain.NormalizePassword(creds.TakePassword())
		if err := domain.CheckPassword(plain); err != nil {
			return err
		}
		hash, err := s.hasher.Hash(ctx, plain)
		if err != nil {
			return err
		}
		creds.PasswordHash = hash
	}
	actor.Touch(s.now())
	return nil
}
