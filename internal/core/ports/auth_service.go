package ports

import (
	"context"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// RegisterInput carries signup fields. Fields that do not apply to the actor
// type are ignored.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Country  string
	Language string
	License  string
}

// CredentialStore owns password hashing and the per-actor token list.
type CredentialStore interface {
	Register(ctx context.Context, t domain.ActorType, in RegisterInput) (domain.Actor, error)
	// AuthenticateByCredentials returns domain.ErrInvalidCredentials for both an
	// unknown email and a wrong password.
	AuthenticateByCredentials(ctx context.Context, t domain.ActorType, email, password string) (domain.Actor, error)
	// Save persists actor, hashing the password first when it was modified.
	Save(ctx context.Context, actor domain.Actor) error
	RevokeToken(ctx context.Context, actor domain.Actor, token string) error
}

// TokenAuthority mints and validates bearer tokens.
type TokenAuthority interface {
	IssueToken(ctx context.Context, actor domain.Actor) (string, error)
	// ValidateToken returns domain.ErrUnauthenticated for every rejection reason.
	ValidateToken(ctx context.Context, token string) (domain.Actor, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	Actor domain.Actor
}

// AuthService implements the signup/login/logout flows.
type AuthService interface {
	Register(ctx context.Context, t domain.ActorType, in RegisterInput) (domain.Actor, error)
	Login(ctx context.Context, t domain.ActorType, email, password string) (*LoginResult, error)
	// SharedLogin tries user credentials first, then tour guide credentials.
	SharedLogin(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, actor domain.Actor, token string) error
}
