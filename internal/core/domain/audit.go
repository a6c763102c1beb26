package domain

import "time"

// AuthEventKind classifies an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventRegister    AuthEventKind = "register"
	EventLogin       AuthEventKind = "login"
	EventLoginFailed AuthEventKind = "login_failed"
	EventLogout      AuthEventKind = "logout"
)

// AuthEvent records an authentication outcome. It never carries a password or token.
type AuthEvent struct {
	Kind      AuthEventKind `json:"kind" bson:"kind"`
	ActorType ActorType     `json:"actor_type" bson:"actor_type"`
	ActorID   string        `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Email     string        `json:"email" bson:"email"`
	At        time.Time     `json:"at" bson:"at"`
}
