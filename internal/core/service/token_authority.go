package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// Claims is the token payload: who (sub), which collection (act), and when
// it stops being valid. Nothing else about the actor is encoded.
type Claims struct {
	ActorType domain.ActorType `json:"act"`
	jwt.RegisteredClaims
}

// TokenAuthority issues HS256 bearer tokens and validates them against the
// owning actor's current token list.
type TokenAuthority struct {
	repos  ports.ActorRepositories
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenAuthority(repos ports.ActorRepositories, secret string, ttl time.Duration) *TokenAuthority {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenAuthority{
		repos:  repos,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a new token for actor and appends it to the actor's token
// list. Tokens from earlier logins stay valid.
func (a *TokenAuthority) IssueToken(ctx context.Context, actor domain.Actor) (string, error) {
	repo, err := a.repos.For(actor.Type())
	if err != nil {
		return "", err
	}

	now := a.now()
	claims := Claims{
		ActorType: actor.Type(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ActorID(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := repo.PushToken(ctx, actor.ActorID(), signed); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	creds := actor.Creds()
	creds.Tokens = append(creds.Tokens, signed)
	return signed, nil
}

// ValidateToken accepts a token only if its signature and expiry check out,
// its actor still exists, and the exact string is still in that actor's
// token list. Every rejection is reported as domain.ErrUnauthenticated; a
// store outage is reported as such so it is not mistaken for a bad token.
func (a *TokenAuthority) ValidateToken(ctx context.Context, raw string) (domain.Actor, error) {
	if raw == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	repo, err := a.repos.For(claims.ActorType)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	actor, err := repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, domain.ErrUnauthenticated
	}
	if !actor.Creds().HasToken(raw) {
		return nil, domain.ErrUnauthenticated
	}
	return actor, nil
}
