package domain

import "time"

// User is a tourist account.
type User struct {
	ID          string `json:"_id" bson:"_id"`
	Credentials `bson:",inline"`
	Phone       string   `json:"phone" bson:"phone"`
	Country     string   `json:"country" bson:"country"`
	Language    string   `json:"language" bson:"language"`
	Hotel       string   `json:"hotel,omitempty" bson:"hotel,omitempty"`
	Restaurant  string   `json:"restaurant,omitempty" bson:"restaurant,omitempty"`
	Tour        string   `json:"tour,omitempty" bson:"tour,omitempty"`
	Likes       []string `json:"likes" bson:"likes"`
	Timestamps  `bson:",inline"`
}

func (u *User) ActorID() string      { return u.ID }
func (u *User) SetActorID(id string) { u.ID = id }
func (u *User) Type() ActorType      { return ActorUser }
func (u *User) Creds() *Credentials  { return &u.Credentials }
func (u *User) LikedPosts() []string { return u.Likes }
func (u *User) Touch(now time.Time)  { u.Timestamps.Touch(now) }

func (u *User) Apply(field, value string) {
	switch field {
	case "name":
		u.Name = value
	case "email":
		u.Email = NormalizeEmail(value)
	case "password":
		u.SetPassword(value)
	case "phone":
		u.Phone = value
	case "country":
		u.Country = value
	case "language":
		u.Language = value
	}
}

// Reservation kinds a user can hold a single reference to.
const (
	ReserveHotel      = "hotel"
	ReserveRestaurant = "restaurant"
)

// FieldTour holds the id of the tour a user has joined. Empty means none.
const FieldTour = "tour"
