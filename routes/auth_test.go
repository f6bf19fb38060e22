package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"campusevents/models"
)

func TestSignupThenLogin(t *testing.T) {
	d := setupServer(t)

	w := doReq(d.s, http.MethodPost, "/signup",
		`{"email":"a@campus.edu","password":"p","fullName":"Ada"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup want 201, got %d; body=%s", w.Code, w.Body.String())
	}

	// The fake stores the password as given, so login compares plaintext.
	w = doReq(d.s, http.MethodPost, "/login", `{"email":"a@campus.edu","password":"p"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token, got body=%s", w.Body.String())
	}
}

func TestLogin_BadCredentials401(t *testing.T) {
	d := setupServer(t)
	d.users.byEmail["a@campus.edu"] = models.User{ID: 1, Email: "a@campus.edu", Password: "right"}

	w := doReq(d.s, http.MethodPost, "/login", `{"email":"a@campus.edu","password":"wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d; body=%s", w.Code, w.Body.String())
	}
}

func TestSignup_BadJSON400(t *testing.T) {
	d := setupServer(t)
	w := doReq(d.s, http.MethodPost, "/signup", `{ bad json`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}
