package handler

import "strings"

// registerRequest is the signup body shared by all actor types. Fields that
// do not apply to a type are ignored.
type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7,max=72,nopassword"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Language string `json:"language"`
	License  string `json:"license"`
}

func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// sharedLoginResponse flags which actor type matched on /users/login.
type sharedLoginResponse struct {
	User      bool   `json:"user,omitempty"`
	Tourguide bool   `json:"tourguide,omitempty"`
	Token     string `json:"token"`
}

type likeResponse struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}
