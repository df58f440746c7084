package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/cloudcarver/feedbackform/pkg/authbroker"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/hooks"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/metrics"
	"github.com/cloudcarver/feedbackform/pkg/session"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("auth")

const (
	ContextKeyProfile = iota
	ContextKeyClient
)

const (
	LoginPath     = "/auth/login/"
	CallbackPath  = "/auth/callback/"
	LogoutPath    = "/auth/logout/"
	LoggedOutPath = "/auth/logged-out/"
)

var ErrUserIdentityNotExist = errors.New("user identity not exists")

//go:generate mockgen -source=auth.go -destination=mock_gen.go -package=auth
type AuthInterface interface {
	// LoginRequired wraps a handler so that it only runs for users holding a
	// broker token. Other users are redirected to the login page.
	LoginRequired(next fiber.Handler) fiber.Handler

	// Profile returns the profile of the current user, fetched by the gate or
	// on first use.
	Profile(c *fiber.Ctx) (*authbroker.Profile, error)

	Login(c *fiber.Ctx) error

	Callback(c *fiber.Ctx) error

	Logout(c *fiber.Ctx) error
}

type Auth struct {
	broker    authbroker.BrokerInterface
	store     session.StoreInterface
	hooks     hooks.HookInterface
	policy    string
	publicURL string
}

var _ AuthInterface = (*Auth)(nil)

func NewAuth(cfg *config.Config, broker authbroker.BrokerInterface, store session.StoreInterface, hooks hooks.HookInterface) AuthInterface {
	policy := cfg.AuthBroker.Policy
	if policy == "" {
		policy = config.PolicyEager
	}
	return &Auth{
		broker:    broker,
		store:     store,
		hooks:     hooks,
		policy:    policy,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (a *Auth) LoginRequired(next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := a.store.Get(c)
		if err != nil {
			return err
		}

		client, err := a.broker.GetClient(c.UserContext(), sess)
		if err != nil {
			return errors.Wrap(err, "failed to get broker client")
		}
		if !client.Authorized() {
			return a.redirectToLogin(c, sess)
		}
		c.Locals(ContextKeyClient, client)

		if a.policy == config.PolicyEager {
			profile, err := a.broker.GetProfile(c.UserContext(), client)
			if err != nil {
				if errors.Is(err, authbroker.ErrAuthExpired) {
					log.Info("session token expired", zap.Error(err))
				} else {
					log.Warn("failed to fetch profile", zap.Error(err))
				}
				return a.redirectToLogin(c, sess)
			}
			c.Locals(ContextKeyProfile, profile)
		}

		metrics.GateDecisions.WithLabelValues(metrics.ResultSuccess).Inc()
		return next(c)
	}
}

func (a *Auth) redirectToLogin(c *fiber.Ctx, sess *session.Session) error {
	metrics.GateDecisions.WithLabelValues(metrics.ResultRedirect).Inc()
	if c.Method() == fiber.MethodGet {
		// path and query only, the request target may be in absolute form
		sess.SetValue(session.NextSessionKey, string(c.Request().URI().RequestURI()))
	}
	return c.Redirect(LoginPath, http.StatusFound)
}

func (a *Auth) Profile(c *fiber.Ctx) (*authbroker.Profile, error) {
	if profile, ok := c.Locals(ContextKeyProfile).(*authbroker.Profile); ok {
		return profile, nil
	}
	client, ok := c.Locals(ContextKeyClient).(*authbroker.Client)
	if !ok {
		return nil, ErrUserIdentityNotExist
	}
	profile, err := a.broker.GetProfile(c.UserContext(), client)
	if err != nil {
		return nil, err
	}
	c.Locals(ContextKeyProfile, profile)
	return profile, nil
}

func (a *Auth) callbackURL(c *fiber.Ctx) string {
	if a.publicURL != "" {
		return a.publicURL + CallbackPath
	}
	return c.BaseURL() + CallbackPath
}

func newState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate state")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (a *Auth) Login(c *fiber.Ctx) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	state, err := newState()
	if err != nil {
		return err
	}
	sess.SetValue(session.StateSessionKey, state)
	return c.Redirect(a.broker.AuthCodeURL(a.callbackURL(c), state), http.StatusFound)
}

func (a *Auth) Callback(c *fiber.Ctx) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	if e := c.Query("error"); e != "" {
		return fiber.NewError(fiber.StatusBadRequest, "Login failed: "+e)
	}

	expected := sess.Pop(session.StateSessionKey)
	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid login state, please try again")
	}
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing authorization code")
	}

	tok, err := a.broker.Exchange(c.UserContext(), a.callbackURL(c), code)
	if err != nil {
		return err
	}
	if err := sess.SaveToken(tok); err != nil {
		return errors.Wrap(err, "failed to save token")
	}
	if err := a.hooks.OnUserLoggedIn(c.UserContext(), tok); err != nil {
		return errors.Wrap(err, "failed to run login hooks")
	}

	return c.Redirect(safeNext(sess.Pop(session.NextSessionKey)), http.StatusFound)
}

// safeNext only allows local paths as the post login target.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (a *Auth) Logout(c *fiber.Ctx) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.ClearToken(); err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}
	return c.Redirect(LoggedOutPath, http.StatusFound)
}

func GetClient(c *fiber.Ctx) (*authbroker.Client, error) {
	client, ok := c.Locals(ContextKeyClient).(*authbroker.Client)
	if !ok {
		return nil, ErrUserIdentityNotExist
	}
	return client, nil
}
