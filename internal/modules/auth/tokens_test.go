package auth

import (
	"net/http"
	"testing"
	"time"

	"myduka.app/pos/internal/shared/apperr"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("owner@duka.co.ke")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	email, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if email != "owner@duka.co.ke" {
		t.Errorf("subject = %q, want owner@duka.co.ke", email)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("owner@duka.co.ke")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("Verify accepted an expired token")
	} else if apperr.HTTPStatus(err) != http.StatusUnauthorized {
		t.Errorf("expired token status = %d, want 401", apperr.HTTPStatus(err))
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issued, err := NewTokenService("secret-a", time.Hour).Issue("owner@duka.co.ke")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Verify(issued); err == nil {
		t.Fatal("Verify accepted a token signed with a different secret")
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, tok := range []string{"", "   ", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted a malformed token", tok)
		}
	}
}
