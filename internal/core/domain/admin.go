package domain

import "time"

// Admin manages the catalog. It carries identity and credentials only.
type Admin struct {
	ID          string `json:"_id" bson:"_id"`
	Credentials `bson:",inline"`
	Timestamps  `bson:",inline"`
}

func (a *Admin) ActorID() string      { return a.ID }
func (a *Admin) SetActorID(id string) { a.ID = id }
func (a *Admin) Type() ActorType      { return ActorAdmin }
func (a *Admin) Creds() *Credentials  { return &a.Credentials }
func (a *Admin) Touch(now time.Time)  { a.Timestamps.Touch(now) }

func (a *Admin) Apply(field, value string) {
	switch field {
	case "name":
		a.Name = value
	case "email":
		a.Email = NormalizeEmail(value)
	case "password":
		a.SetPassword(value)
	}
}
