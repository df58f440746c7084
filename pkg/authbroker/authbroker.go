package authbroker

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

var log = logger.NewLogAgent("authbroker")

const (
	AuthorizePath  = "/o/authorize/"
	TokenPath      = "/o/token/"
	IntrospectPath = "o/introspect/"
	ProfilePath    = "/api/v1/user/me/"

	DefaultScope = "read write"
)

var ErrAuthExpired = errors.New("authentication expired")

// TokenStore keeps the token of one user, usually the user's session.
type TokenStore interface {
	Token() (*oauth2.Token, error)
	SaveToken(tok *oauth2.Token) error
	ClearToken() error
}

//go:generate mockgen -source=authbroker.go -destination=mock_gen.go -package=authbroker
type BrokerInterface interface {
	// AuthCodeURL returns the broker URL the user is sent to for login.
	AuthCodeURL(redirectURL, state string) string

	// Exchange trades the authorization code for a token.
	Exchange(ctx context.Context, redirectURL, code string) (*oauth2.Token, error)

	// GetClient builds an HTTP client authorized with the stored token. The
	// token is refreshed when expired and the new token is saved back to the
	// store before the request is sent.
	GetClient(ctx context.Context, store TokenStore) (*Client, error)

	// GetProfile fetches the profile of the user the client is authorized for.
	GetProfile(ctx context.Context, client *Client) (*Profile, error)
}

type Endpoints struct {
	AuthorizeURL  string
	TokenURL      string
	IntrospectURL string
	ProfileURL    string
}

type Broker struct {
	endpoints Endpoints
	oauth     oauth2.Config
}

func NewBroker(cfg *config.Config) (BrokerInterface, error) {
	endpoints, err := resolveEndpoints(cfg.AuthBroker.URL)
	if err != nil {
		return nil, err
	}
	scope := utils.UnwrapOrDefault(cfg.AuthBroker.Scope, DefaultScope)
	return &Broker{
		endpoints: *endpoints,
		oauth: oauth2.Config{
			ClientID:     cfg.AuthBroker.ClientID,
			ClientSecret: cfg.AuthBroker.ClientSecret,
			Scopes:       strings.Fields(scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:   endpoints.AuthorizeURL,
				TokenURL:  endpoints.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}, nil
}

// resolveEndpoints joins the endpoint paths to the broker URL the way a
// browser resolves links: absolute paths replace the path of the base URL.
func resolveEndpoints(base string) (*Endpoints, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid authbroker url %s", base)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("authbroker url %s must be absolute", base)
	}
	resolve := func(ref string) string {
		return u.ResolveReference(&url.URL{Path: ref}).String()
	}
	return &Endpoints{
		AuthorizeURL:  resolve(AuthorizePath),
		TokenURL:      resolve(TokenPath),
		IntrospectURL: resolve(IntrospectPath),
		ProfileURL:    resolve(ProfilePath),
	}, nil
}

func (b *Broker) Endpoints() Endpoints {
	return b.endpoints
}

func (b *Broker) config(redirectURL string) *oauth2.Config {
	cfg := b.oauth
	cfg.RedirectURL = redirectURL
	return &cfg
}

func (b *Broker) AuthCodeURL(redirectURL, state string) string {
	return b.config(redirectURL).AuthCodeURL(state)
}

func (b *Broker) Exchange(ctx context.Context, redirectURL, code string) (*oauth2.Token, error) {
	tok, err := b.config(redirectURL).Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}
	return tok, nil
}

func (b *Broker) GetClient(ctx context.Context, store TokenStore) (*Client, error) {
	tok, err := store.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token")
	}
	if tok == nil {
		return NewClient(oauth2.NewClient(ctx, expiredSource{}), nil), nil
	}
	src := &savingTokenSource{
		src:   b.oauth.TokenSource(ctx, tok),
		store: store,
		last:  tok,
	}
	return NewClient(oauth2.NewClient(ctx, src), tok), nil
}

// Client is an HTTP client authorized for one user.
type Client struct {
	httpClient *http.Client
	token      *oauth2.Token
}

func NewClient(httpClient *http.Client, token *oauth2.Token) *Client {
	return &Client{httpClient: httpClient, token: token}
}

// Authorized reports whether the client holds an access token. It does not
// check expiry or talk to the broker.
func (c *Client) Authorized() bool {
	return c.token != nil && c.token.AccessToken != ""
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
