package domain

import "time"

// Tourguide is a licensed guide who runs tours.
type Tourguide struct {
	ID          string `json:"_id" bson:"_id"`
	Credentials `bson:",inline"`
	Phone       string   `json:"phone" bson:"phone"`
	Language    string   `json:"language" bson:"language"`
	License     string   `json:"license" bson:"license"`
	Likes       []string `json:"likes" bson:"likes"`
	Timestamps  `bson:",inline"`
}

func (g *Tourguide) ActorID() string      { return g.ID }
func (g *Tourguide) SetActorID(id string) { g.ID = id }
func (g *Tourguide) Type() ActorType      { return ActorTourguide }
func (g *Tourguide) Creds() *Credentials  { return &g.Credentials }
func (g *Tourguide) LikedPosts() []string { return g.Likes }
func (g *Tourguide) Touch(now time.Time)  { g.Timestamps.Touch(now) }

func (g *Tourguide) Apply(field, value string) {
	switch field {
	case "name":
		g.Name = value
	case "email":
		g.Email = NormalizeEmail(value)
	case "password":
		g.SetPassword(value)
	case "phone":
		g.Phone = value
	case "language":
		g.Language = value
	case "license":
		g.License = value
	}
}
