package domain

import "strings"

// DefaultAvatar is assigned to every new actor and is never removed from storage.
const DefaultAvatar = "37fa4d5d0a9260b4cfae2eef989d51bf1620687131345.jpeg"

// Credentials holds identity and session state. PasswordHash and Tokens are
// excluded from every JSON representation.
type Credentials struct {
	Name         string   `json:"name" bson:"name"`
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"-" bson:"password"`
	Tokens       []string `json:"-" bson:"tokens"`
	Avatar       string   `json:"avatar" bson:"avatar"`

	// plaintext staged by SetPassword, hashed by the credential store on save.
	pendingPassword string
	passwordTouched bool
}

// SetPassword stages a new plaintext password. It is hashed on the next save.
func (c *Credentials) SetPassword(plain string) {
	c.pendingPassword = plain
	c.passwordTouched = true
}

// PasswordModified reports whether SetPassword was called since the last save.
func (c *Credentials) PasswordModified() bool {
	return c.passwordTouched
}

// TakePassword returns the staged plaintext and clears it.
func (c *Credentials) TakePassword() string {
	p := c.pendingPassword
	c.pendingPassword = ""
	c.passwordTouched = false
	return p
}

// HasToken reports whether token is in the valid-token list.
func (c *Credentials) HasToken(token string) bool {
	for _, t := range c.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// RemoveToken drops the first occurrence of token. It reports whether one was removed.
func (c *Credentials) RemoveToken(token string) bool {
	for i, t := range c.Tokens {
		if t == token {
			c.Tokens = append(c.Tokens[:i], c.Tokens[i+1:]...)
			return true
		}
	}
	return false
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 7

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// NormalizePassword trims surrounding whitespace. The policy check, hashing
// and login comparison all see the normalized value.
func NormalizePassword(plain string) string {
	return strings.TrimSpace(plain)
}

// CheckPassword enforces the password policy on the normalized plaintext.
func CheckPassword(plain string) error {
	p := NormalizePassword(plain)
	switch {
	case len(p) < MinPasswordLength:
		return NewValidationError("password", "must be at least 7 characters")
	case len(p) > maxPasswordBytes:
		return NewValidationError("password", "must be at most 72 bytes")
	case strings.Contains(strings.ToLower(p), "password"):
		return NewValidationError("password", `must not contain "password"`)
	}
	return nil
}
