package ports

import "context"

// LoginThrottle limits repeated failed logins per normalized email. The key is
// shared across actor types so the combined user/tour guide login counts once.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
