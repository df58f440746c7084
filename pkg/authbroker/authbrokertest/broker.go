// Package authbrokertest runs an in-process OAuth2 broker for tests.
package authbrokertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const (
	TokenPath   = "/o/token/"
	ProfilePath = "/api/v1/user/me/"
	Scope       = "read write"
)

// Broker serves the token and profile endpoints of the broker.
type Broker struct {
	*httptest.Server

	ClientID     string
	ClientSecret string

	mu            sync.Mutex
	ExpiresIn     int
	Profile       map[string]any
	ProfileStatus int
	codes         map[string]bool
	access        map[string]bool
	refresh       map[string]bool
	seq           int
	Refreshes     int
	ProfileCalls  int
}

func NewBroker() *Broker {
	f := &Broker{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		ExpiresIn:    3600,
		Profile: map[string]any{
			"email":      "jane.doe@example.com",
			"first_name": "Jane",
			"last_name":  "Doe",
			"user_id":    "a7c3d1e0",
		},
		ProfileStatus: http.StatusOK,
		codes:         map[string]bool{},
		access:        map[string]bool{},
		refresh:       map[string]bool{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc(TokenPath, f.handleToken)
	mux.HandleFunc(ProfilePath, f.handleProfile)
	f.Server = httptest.NewServer(mux)
	return f
}

// AddCode registers an authorization code accepted once by the token endpoint.
func (f *Broker) AddCode(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code] = true
}

// AddRefreshToken registers a refresh token accepted by the token endpoint.
func (f *Broker) AddRefreshToken(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh[tok] = true
}

// AddAccessToken registers an access token accepted by the profile endpoint.
func (f *Broker) AddAccessToken(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access[tok] = true
}

func (f *Broker) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *Broker) issue(w http.ResponseWriter) {
	f.seq++
	access := fmt.Sprintf("access-%d", f.seq)
	refresh := fmt.Sprintf("refresh-%d", f.seq)
	f.access[access] = true
	f.refresh[refresh] = true
	f.writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "Bearer",
		"expires_in":    f.ExpiresIn,
		"scope":         Scope,
	})
}

func (f *Broker) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		f.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_request"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.PostForm.Get("client_id") != f.ClientID || r.PostForm.Get("client_secret") != f.ClientSecret {
		f.writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
		return
	}
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		code := r.PostForm.Get("code")
		if !f.codes[code] {
			f.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
			return
		}
		delete(f.codes, code)
		f.issue(w)
	case "refresh_token":
		rt := r.PostForm.Get("refresh_token")
		if !f.refresh[rt] {
			f.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
			return
		}
		delete(f.refresh, rt)
		f.Refreshes++
		f.issue(w)
	default:
		f.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unsupported_grant_type"})
	}
}

func (f *Broker) handleProfile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProfileCalls++

	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !f.access[tok] {
		f.writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "invalid token"})
		return
	}
	if f.ProfileStatus != http.StatusOK {
		f.writeJSON(w, f.ProfileStatus, map[string]any{"detail": "unavailable"})
		return
	}
	f.writeJSON(w, http.StatusOK, f.Profile)
}
