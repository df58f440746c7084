package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var log = logger.NewLogAgent("session")

const (
	TokenSessionKey = "_authbroker_token"
	StateSessionKey = "_authbroker_state"
	NextSessionKey  = "_authbroker_next"
)

const (
	DefaultExpiration = 24 * time.Hour
	DefaultCookieName = "feedbackform_session"
)

var ErrInvalidToken = errors.New("invalid token")

type localsKey struct{}

type StoreInterface interface {
	// Get returns the session of the current request. All calls within one
	// request share the same session.
	Get(c *fiber.Ctx) (*Session, error)

	// Middleware persists the request's session after the handler returned.
	Middleware() fiber.Handler
}

type Store struct {
	store *session.Store
}

// NewStore builds the session store. A nil storage keeps sessions in memory.
func NewStore(cfg *config.Config, storage fiber.Storage) StoreInterface {
	return &Store{
		store: session.New(session.Config{
			Expiration:     utils.UnwrapOrDefault(cfg.Session.Expiration, DefaultExpiration),
			Storage:        storage,
			KeyLookup:      "cookie:" + utils.IfElse(cfg.Session.CookieName == "", DefaultCookieName, cfg.Session.CookieName),
			CookiePath:     "/",
			CookieSecure:   cfg.Session.CookieSecure,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
}

func (s *Store) Get(c *fiber.Ctx) (*Session, error) {
	if sess, ok := c.Locals(localsKey{}).(*Session); ok {
		return sess, nil
	}
	raw, err := s.store.Get(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	sess := &Session{raw: raw}
	c.Locals(localsKey{}, sess)
	return sess, nil
}

func (s *Store) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		sess, ok := c.Locals(localsKey{}).(*Session)
		if !ok {
			return err
		}
		if cerr := sess.commit(); cerr != nil {
			log.Error("failed to save session", zap.Error(cerr))
			if err == nil {
				return cerr
			}
		}
		return err
	}
}

// Session wraps the fiber session of one request. The underlying session is
// released by fiber once saved, so writes are only marked here and flushed
// once by the store middleware.
type Session struct {
	mu        sync.Mutex
	raw       *session.Session
	dirty     bool
	destroyed bool
}

type storedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (t *storedToken) valid() bool {
	return t.AccessToken != "" && t.RefreshToken != "" && t.TokenType != "" && !t.ExpiresAt.IsZero()
}

func (s *Session) Value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ""
	}
	v, _ := s.raw.Get(key).(string)
	return v
}

func (s *Session) SetValue(key, val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.raw.Set(key, val)
	s.dirty = true
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed || s.raw.Get(key) == nil {
		return
	}
	s.raw.Delete(key)
	s.dirty = true
}

// Pop returns the value and removes it from the session.
func (s *Session) Pop(key string) string {
	v := s.Value(key)
	if v != "" {
		s.Delete(key)
	}
	return v
}

// Token returns the stored token, or nil when there is none. A stored token
// with missing fields is dropped and reported as absent.
func (s *Session) Token() (*oauth2.Token, error) {
	raw := s.Value(TokenSessionKey)
	if raw == "" {
		return nil, nil
	}
	var st storedToken
	if err := json.Unmarshal([]byte(raw), &st); err != nil || !st.valid() {
		log.Warn("dropping malformed session token")
		s.Delete(TokenSessionKey)
		return nil, nil
	}
	tok := &oauth2.Token{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    st.TokenType,
		Expiry:       st.ExpiresAt,
	}
	return tok.WithExtra(map[string]any{"scope": st.Scope}), nil
}

// SaveToken replaces the stored token. The scope of the previous token is
// kept when the new one does not carry any.
func (s *Session) SaveToken(tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.Wrap(ErrInvalidToken, "access token is empty")
	}
	if tok.RefreshToken == "" {
		return errors.Wrap(ErrInvalidToken, "refresh token is empty")
	}
	st := storedToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    utils.IfElse(tok.TokenType == "", "Bearer", tok.TokenType),
		ExpiresAt:    tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		st.Scope = scope
	} else if prev, _ := s.Token(); prev != nil {
		st.Scope, _ = prev.Extra("scope").(string)
	}
	if st.ExpiresAt.IsZero() {
		return errors.Wrap(ErrInvalidToken, "token has no expiry")
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "failed to marshal token")
	}
	s.SetValue(TokenSessionKey, string(raw))
	return nil
}

func (s *Session) ClearToken() error {
	s.Delete(TokenSessionKey)
	return nil
}

// Destroy removes the session from the storage and expires the cookie.
func (s *Session) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	return s.raw.Destroy()
}

func (s *Session) commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed || !s.dirty {
		return nil
	}
	s.dirty = false
	return s.raw.Save()
}
