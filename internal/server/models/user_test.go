package models

import (
	"strings"
	"testing"
)

func TestAvatarHash_LowercasesEmail(t *testing.T) {
	t.Parallel()

	if AvatarHash("John@Example.COM") != AvatarHash("john@example.com") {
		t.Fatalf("avatar hash must be case-insensitive over the email")
	}
	// md5("john@example.com")
	if got := AvatarHash("john@example.com"); got != "d4c74594d841139328695756648b6bd6" {
		t.Fatalf("unexpected digest: %q", got)
	}
}

func TestUser_Gravatar(t *testing.T) {
	t.Parallel()

	u := &User{Email: "john@example.com", AvatarHash: AvatarHash("john@example.com")}
	url := u.Gravatar(100, "retro", "g")

	if !strings.HasPrefix(url, "https://secure.gravatar.com/avatar/d4c74594d841139328695756648b6bd6") {
		t.Fatalf("unexpected gravatar url: %q", url)
	}
	if !strings.Contains(url, "s=100") || !strings.Contains(url, "d=retro") || !strings.Contains(url, "r=g") {
		t.Fatalf("missing query params: %q", url)
	}
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	t.Parallel()

	u := &User{}
	if err := u.SetPassword("cat"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if u.PasswordHash == "cat" || u.PasswordHash == "" {
		t.Fatalf("password stored in plaintext or empty")
	}
	if !u.VerifyPassword("cat") {
		t.Fatalf("correct password rejected")
	}
	if u.VerifyPassword("dog") {
		t.Fatalf("wrong password accepted")
	}
}
