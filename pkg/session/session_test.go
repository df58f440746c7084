package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestApp(t *testing.T, store StoreInterface, handler fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(store.Middleware())
	app.All("/*", handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTokenRoundTrip(t *testing.T) {
	store := NewStore(&config.Config{}, nil)
	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	step := 0
	app := newTestApp(t, store, func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		step++
		switch step {
		case 1:
			tok, err := sess.Token()
			require.NoError(t, err)
			require.Nil(t, tok)
			return sess.SaveToken((&oauth2.Token{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				TokenType:    "Bearer",
				Expiry:       expiry,
			}).WithExtra(map[string]any{"scope": "read write"}))
		case 2:
			tok, err := sess.Token()
			require.NoError(t, err)
			require.NotNil(t, tok)
			require.Equal(t, "access-1", tok.AccessToken)
			require.Equal(t, "refresh-1", tok.RefreshToken)
			require.True(t, expiry.Equal(tok.Expiry))
			require.Equal(t, "read write", tok.Extra("scope"))

			// a refreshed token without scope keeps the previous one
			return sess.SaveToken(&oauth2.Token{
				AccessToken:  "access-2",
				RefreshToken: "refresh-2",
				TokenType:    "Bearer",
				Expiry:       expiry.Add(time.Hour),
			})
		case 3:
			tok, err := sess.Token()
			require.NoError(t, err)
			require.Equal(t, "access-2", tok.AccessToken)
			require.Equal(t, "read write", tok.Extra("scope"))
			return sess.ClearToken()
		default:
			tok, err := sess.Token()
			require.NoError(t, err)
			require.Nil(t, tok)
		}
		return c.SendString("ok")
	})

	resp, _ := doRequest(t, app, nil)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, DefaultCookieName, cookies[0].Name)

	doRequest(t, app, cookies)
	doRequest(t, app, cookies)
	_, body := doRequest(t, app, cookies)
	require.Equal(t, "ok", body)
}

func TestSaveTokenRejectsIncompleteTokens(t *testing.T) {
	store := NewStore(&config.Config{}, nil)
	app := newTestApp(t, store, func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		require.ErrorIs(t, sess.SaveToken(nil), ErrInvalidToken)
		require.ErrorIs(t, sess.SaveToken(&oauth2.Token{AccessToken: "a"}), ErrInvalidToken)
		require.ErrorIs(t, sess.SaveToken(&oauth2.Token{
			AccessToken: "a",
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour),
		}), ErrInvalidToken)
		return c.SendString("ok")
	})
	resp, _ := doRequest(t, app, nil)
	// nothing was written, so no cookie is issued
	require.Empty(t, resp.Cookies())
}

func TestMalformedTokenIsDropped(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{"},
		{name: "access token only", raw: `{"access_token":"a"}`},
		{
			name: "no refresh token",
			raw:  `{"access_token":"a","token_type":"Bearer","scope":"read","expires_at":"2030-01-01T00:00:00Z"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(&config.Config{}, nil)
			step := 0
			app := newTestApp(t, store, func(c *fiber.Ctx) error {
				sess, err := store.Get(c)
				if err != nil {
					return err
				}
				step++
				if step == 1 {
					sess.SetValue(TokenSessionKey, tc.raw)
					return nil
				}
				tok, err := sess.Token()
				require.NoError(t, err)
				require.Nil(t, tok)
				require.Empty(t, sess.Value(TokenSessionKey))
				return nil
			})
			resp, _ := doRequest(t, app, nil)
			doRequest(t, app, resp.Cookies())
			require.Equal(t, 2, step)
		})
	}
}

func TestSameSessionWithinRequest(t *testing.T) {
	store := NewStore(&config.Config{}, nil)
	app := newTestApp(t, store, func(c *fiber.Ctx) error {
		a, err := store.Get(c)
		require.NoError(t, err)
		b, err := store.Get(c)
		require.NoError(t, err)
		require.Same(t, a, b)

		a.SetValue(StateSessionKey, "xyz")
		require.Equal(t, "xyz", b.Pop(StateSessionKey))
		require.Empty(t, a.Value(StateSessionKey))
		return nil
	})
	doRequest(t, app, nil)
}

func TestDestroy(t *testing.T) {
	store := NewStore(&config.Config{}, nil)
	step := 0
	app := newTestApp(t, store, func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		step++
		switch step {
		case 1:
			sess.SetValue(NextSessionKey, "/success/")
		case 2:
			require.Equal(t, "/success/", sess.Value(NextSessionKey))
			require.NoError(t, sess.Destroy())
			// writes after destroy are ignored
			sess.SetValue(NextSessionKey, "/again/")
		case 3:
			require.Empty(t, sess.Value(NextSessionKey))
		}
		return nil
	})
	resp, _ := doRequest(t, app, nil)
	cookies := resp.Cookies()
	doRequest(t, app, cookies)
	doRequest(t, app, cookies)
}
