package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

// sharedLoginOrder is the precedence used by the combined user/tour guide login.
var sharedLoginOrder = []domain.ActorType{domain.ActorUser, domain.ActorTourguide}

type authService struct {
	store    ports.CredentialStore
	tokens   ports.TokenAuthority
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the signup/login/logout flows. throttle and audit may be nil.
func NewAuthService(
	store ports.CredentialStore,
	tokens ports.TokenAuthority,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		store:    store,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Register(ctx context.Context, t domain.ActorType, in ports.RegisterInput) (domain.Actor, error) {
	actor, err := s.store.Register(ctx, t, in)
	if err != nil {
		return nil, err
	}
	s.record(domain.EventRegister, t, actor.ActorID(), actor.Creds().Email)
	return actor, nil
}

func (s *authService) Login(ctx context.Context, t domain.ActorType, email, password string) (*ports.LoginResult, error) {
	return s.authenticate(ctx, email, password, t)
}

func (s *authService) SharedLogin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.authenticate(ctx, email, password, sharedLoginOrder...)
}

// authenticate tries each actor type in order and issues a token for the
// first match. Only invalid credentials fall through to the next type.
func (s *authService) authenticate(ctx context.Context, email, password string, types ...domain.ActorType) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, err
	}

	for _, t := range types {
		actor, err := s.store.AuthenticateByCredentials(ctx, t, email, password)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			continue
		}
		if err != nil {
			return nil, err
		}

		token, err := s.tokens.IssueToken(ctx, actor)
		if err != nil {
			return nil, err
		}
		if s.throttle != nil {
			if err := s.throttle.Reset(ctx, email); err != nil {
				s.log.Warn().Err(err).Msg("login throttle reset failed")
			}
		}
		s.record(domain.EventLogin, t, actor.ActorID(), email)
		return &ports.LoginResult{Token: token, Actor: actor}, nil
	}

	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(domain.EventLoginFailed, types[0], "", email)
	return nil, domain.ErrInvalidCredentials
}

// checkThrottle fails open: a throttle backend error never blocks a login.
func (s *authService) checkThrottle(ctx context.Context, email string) error {
	if s.throttle == nil {
		return nil
	}
	ok, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle unavailable")
		return nil
	}
	if !ok {
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, actor domain.Actor, token string) error {
	if err := s.store.RevokeToken(ctx, actor, token); err != nil {
		return err
	}
	s.record(domain.EventLogout, actor.Type(), actor.ActorID(), actor.Creds().Email)
	return nil
}

func (s *authService) record(kind domain.AuthEventKind, t domain.ActorType, id, email string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Kind:      kind,
		ActorType: t,
		ActorID:   id,
		Email:     email,
		At:        s.now(),
	})
}
