package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActorType tags which collection an authenticated principal belongs to.
type ActorType string

const (
	ActorUser      ActorType = "user"
	ActorTourguide ActorType = "tourguide"
	ActorAdmin     ActorType = "admin"
)

// ActorTypes lists every actor type in shared-login precedence order.
var ActorTypes = []ActorType{ActorUser, ActorTourguide, ActorAdmin}

// Collection returns the collection (and route prefix) holding actors of this type.
func (t ActorType) Collection() string {
	switch t {
	case ActorUser:
		return "users"
	case ActorTourguide:
		return "tourguides"
	case ActorAdmin:
		return "admins"
	}
	return ""
}

// Valid reports whether t is one of the known actor types.
func (t ActorType) Valid() bool {
	return t.Collection() != ""
}

// ParseActorType accepts either the singular tag or the collection name.
func ParseActorType(s string) (ActorType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range ActorTypes {
		if s == string(t) || s == t.Collection() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown actor type %q", s)
}

// Actor is the capability set shared by users, tour guides and admins.
type Actor interface {
	ActorID() string
	SetActorID(id string)
	Type() ActorType
	Creds() *Credentials
	// Apply sets a single profile field. Callers check AllowedUpdates first.
	Apply(field, value string)
	Touch(now time.Time)
}

// Liker is implemented by actors that can like posts.
type Liker interface {
	Actor
	LikedPosts() []string
}

var allowedUpdates = map[ActorType][]string{
	ActorUser:      {"name", "email", "phone", "password", "country", "language"},
	ActorTourguide: {"name", "email", "phone", "password", "language", "license"},
	ActorAdmin:     {"name", "email", "password"},
}

// AllowedUpdates returns the profile fields an actor of type t may change.
func AllowedUpdates(t ActorType) []string {
	return append([]string(nil), allowedUpdates[t]...)
}

// IsAllowedUpdate reports whether field is in t's update allowlist.
func IsAllowedUpdate(t ActorType, field string) bool {
	for _, f := range allowedUpdates[t] {
		if f == field {
			return true
		}
	}
	return false
}

// New returns an empty actor of type t, ready to be decoded into.
func New(t ActorType) Actor {
	switch t {
	case ActorUser:
		return &User{}
	case ActorTourguide:
		return &Tourguide{}
	case ActorAdmin:
		return &Admin{}
	}
	return nil
}

// Timestamps are maintained on every save.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Touch sets UpdatedAt, and CreatedAt on first save.
func (ts *Timestamps) Touch(now time.Time) {
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}
