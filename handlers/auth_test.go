package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "ada@example.com",
		"username": "ada_l",
		"password": "password123",
	})
	expectStatus(t, w, http.StatusCreated)

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, w, &reg)
	if reg.Token == "" {
		t.Fatalf("register must return a token")
	}
	if reg.User.Email != "ada@example.com" || reg.User.Username != "ada_l" {
		t.Fatalf("unexpected user payload: %+v", reg.User)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "ada_l",
		"password": "password123",
	})
	expectStatus(t, w, http.StatusOK)

	// Token must work against a protected route
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)
	w = doJSON(t, r, http.MethodGet, "/user/me", login.Token, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestRegisterDuplicate(t *testing.T) {
	r, _, _ := newTestServer(t)

	body := map[string]any{
		"email":    "ada@example.com",
		"username": "ada_l",
		"password": "password123",
	}
	expectStatus(t, doJSON(t, r, http.MethodPost, "/auth/register", "", body), http.StatusCreated)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", body)
	expectStatus(t, w, http.StatusConflict)
	if msg := errorMessage(t, w); msg != "User already exists" {
		t.Fatalf("unexpected conflict message: %q", msg)
	}

	// Same username with a different email is still a conflict
	body["email"] = "other@example.com"
	expectStatus(t, doJSON(t, r, http.MethodPost, "/auth/register", "", body), http.StatusConflict)
}

func TestRegisterValidation(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"username": "bad user!",
		"password": "123",
	})
	expectStatus(t, w, http.StatusBadRequest)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"details"`
	}
	decodeBody(t, w, &body)
	if body.Error != "Validation error" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
	if len(body.Details) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", body.Details)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	r, _, _ := newTestServer(t)

	expectStatus(t, doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "ada@example.com",
		"username": "ada_l",
		"password": "password123",
	}), http.StatusCreated)

	// Wrong password and unknown username must be indistinguishable
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "ada_l",
		"password": "wrong-password",
	})
	expectStatus(t, w, http.StatusUnauthorized)
	if msg := errorMessage(t, w); msg != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", msg)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "nobody",
		"password": "password123",
	})
	expectStatus(t, w, http.StatusUnauthorized)
	if msg := errorMessage(t, w); msg != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/user/me", "", nil)
	expectStatus(t, w, http.StatusUnauthorized)
	if msg := errorMessage(t, w); msg != "No token provided" {
		t.Fatalf("unexpected message: %q", msg)
	}

	w = doJSON(t, r, http.MethodGet, "/user/me", "garbage-token", nil)
	expectStatus(t, w, http.StatusUnauthorized)
	if msg := errorMessage(t, w); msg != "Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
