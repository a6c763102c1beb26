package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseActorType(t *testing.T) {
	cases := map[string]ActorType{
		"user":       ActorUser,
		"users":      ActorUser,
		"Tourguides": ActorTourguide,
		" admin ":    ActorAdmin,
	}
	for in, want := range cases {
		got, err := ParseActorType(in)
		if err != nil {
			t.Fatalf("ParseActorType(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseActorType(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseActorType("guest"); err == nil {
		t.Error("expected error for unknown actor type")
	}
}

func TestAllowedUpdates(t *testing.T) {
	if !IsAllowedUpdate(ActorUser, "country") {
		t.Error("user must be able to update country")
	}
	if IsAllowedUpdate(ActorAdmin, "phone") {
		t.Error("admin must not be able to update phone")
	}
	if !IsAllowedUpdate(ActorTourguide, "license") {
		t.Error("tourguide must be able to update license")
	}
	if IsAllowedUpdate(ActorUser, "tokens") || IsAllowedUpdate(ActorUser, "avatar") {
		t.Error("credential internals must never be updatable")
	}

	got := AllowedUpdates(ActorAdmin)
	got[0] = "mutated"
	if AllowedUpdates(ActorAdmin)[0] != "name" {
		t.Error("AllowedUpdates must return a copy")
	}
}

func TestCredentials_PasswordStaging(t *testing.T) {
	var c Credentials
	if c.PasswordModified() {
		t.Fatal("fresh credentials must not report a modified password")
	}
	c.SetPassword("secret12")
	if !c.PasswordModified() {
		t.Fatal("expected password to be marked modified")
	}
	if got := c.TakePassword(); got != "secret12" {
		t.Fatalf("TakePassword = %q", got)
	}
	if c.PasswordModified() {
		t.Error("TakePassword must clear the modified flag")
	}
}

func TestCredentials_RemoveToken(t *testing.T) {
	c := Credentials{Tokens: []string{"a", "b", "a"}}
	if !c.RemoveToken("a") {
		t.Fatal("expected token removed")
	}
	if len(c.Tokens) != 2 || c.Tokens[0] != "b" || c.Tokens[1] != "a" {
		t.Fatalf("expected exactly one occurrence removed, got %v", c.Tokens)
	}
	if c.RemoveToken("zzz") {
		t.Error("removing an absent token must report false")
	}
	if !c.HasToken("b") || c.HasToken("zzz") {
		t.Error("HasToken mismatch")
	}
}

func TestActorJSON_OmitsSecrets(t *testing.T) {
	u := &User{ID: "u1", Phone: "123"}
	u.Name = "Ana"
	u.Email = "ana@example.com"
	u.PasswordHash = "$2a$10$hash"
	u.Tokens = []string{"tok"}
	u.Touch(time.Now())

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	for _, forbidden := range []string{"password", "tokens", "$2a$10$hash", "tok\""} {
		if strings.Contains(body, forbidden) {
			t.Errorf("serialized actor leaks %q: %s", forbidden, body)
		}
	}
	if !strings.Contains(body, `"email":"ana@example.com"`) {
		t.Errorf("expected email in payload: %s", body)
	}
}

func TestApply_NormalizesEmailAndStagesPassword(t *testing.T) {
	g := &Tourguide{}
	g.Apply("email", "  Guide@Example.COM ")
	g.Apply("password", "newsecret")
	g.Apply("license", "L-42")

	if g.Email != "guide@example.com" {
		t.Errorf("email not normalized: %q", g.Email)
	}
	if !g.PasswordModified() || g.PasswordHash != "" {
		t.Error("password must be staged, not written to the hash field")
	}
	if g.License != "L-42" {
		t.Errorf("license = %q", g.License)
	}
}

func TestValidationError_Unwraps(t *testing.T) {
	err := NewValidationError("email", "is invalid")
	if err.Error() != "email is invalid" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != ErrValidation {
		t.Error("ValidationError must unwrap to ErrValidation")
	}
}

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		in   string
		okay bool
	}{
		{"secret12", true},
		{"short", false},
		{"      abc     ", false},
		{"mypassword1", false},
		{"MyPassWord99", false},
		{strings.Repeat("x", 73), false},
	}
	for _, tc := range cases {
		err := CheckPassword(tc.in)
		if (err == nil) != tc.okay {
			t.Errorf("CheckPassword(%q) err=%v, want ok=%v", tc.in, err, tc.okay)
		}
	}
}
