package config

import (
	"net/url"
	"os"
	"time"

	"github.com/cloudcarver/edc/conf"
	"github.com/pkg/errors"
)

const (
	BackendZendesk = "zendesk"
	BackendJira    = "jira"

	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	PolicyEager = "eager"
	PolicyLocal = "local"
)

const EnvPrefix = "FF_"

type Log struct {
	// (Optional) The log level, one of debug, info, warn, error. Default is info
	Level string `yaml:"level,omitempty"`

	// (Optional) Whether to use the human readable development encoder
	Development bool `yaml:"development,omitempty"`
}

type AuthBroker struct {
	// (Required) The base URL of the OAuth2 broker, e.g. https://sso.example.com
	URL string `yaml:"url"`

	// (Required) The OAuth2 client ID registered with the broker
	ClientID string `yaml:"clientid"`

	// (Required) The OAuth2 client secret registered with the broker
	ClientSecret string `yaml:"clientsecret"`

	// (Optional) The requested scope, default is "read write"
	Scope *string `yaml:"scope,omitempty"`

	// (Optional) How protected pages check the session token, either "eager"
	// (fetch the profile on every request) or "local" (token presence only).
	// Default is eager
	Policy string `yaml:"policy,omitempty"`
}

type Redis struct {
	// (Required) The address of the redis server, e.g. localhost:6379
	Addr string `yaml:"addr"`

	Username string `yaml:"username,omitempty"`

	Password string `yaml:"password,omitempty"`

	DB int `yaml:"db,omitempty"`

	// (Optional) The key prefix of session entries, default is "feedbackform:session:"
	KeyPrefix *string `yaml:"keyprefix,omitempty"`
}

type Pg struct {
	// (Required) The DSN (Data Source Name) for postgres database connection.
	DSN *string `yaml:"dsn,omitempty"`

	// (Optional) The cron spec of the expired session sweeper, default is "@every 10m"
	SweepSchedule *string `yaml:"sweepschedule,omitempty"`
}

type Session struct {
	// (Optional) The idle lifetime of a session, default is 24h
	Expiration *time.Duration `yaml:"expiration,omitempty"`

	// (Optional) The name of the session cookie, default is "feedbackform_session"
	CookieName string `yaml:"cookiename,omitempty"`

	// (Optional) Whether the session cookie is only sent over HTTPS
	CookieSecure bool `yaml:"cookiesecure,omitempty"`

	// (Optional) Where sessions are kept, one of memory, redis, postgres. Default is memory
	Storage string `yaml:"storage,omitempty"`

	Redis Redis `yaml:"redis,omitempty"`

	Pg Pg `yaml:"pg,omitempty"`
}

type Form struct {
	// (Optional) The form variant, one of feedback, change-request, basic. Default is feedback
	Variant string `yaml:"variant,omitempty"`
}

type AV struct {
	// (Optional) The URL of the antivirus scanning service. If not set, attachments are not scanned
	URL string `yaml:"url,omitempty"`

	Username string `yaml:"username,omitempty"`

	Password string `yaml:"password,omitempty"`
}

type ZendeskFields struct {
	Service         int64 `yaml:"service,omitempty"`
	Email           int64 `yaml:"email,omitempty"`
	Phone           int64 `yaml:"phone,omitempty"`
	Department      int64 `yaml:"department,omitempty"`
	Action          int64 `yaml:"action,omitempty"`
	DateExplanation int64 `yaml:"dateexplanation,omitempty"`
}

type Zendesk struct {
	// (Required) The zendesk subdomain, the API lives at https://<subdomain>.zendesk.com
	Subdomain string `yaml:"subdomain"`

	// (Required) The email of the zendesk API user
	Email string `yaml:"email"`

	// (Required) The zendesk API token
	Token string `yaml:"token"`

	// (Optional) Overrides the API base URL derived from the subdomain
	BaseURL string `yaml:"baseurl,omitempty"`

	// (Optional) The subject of created tickets
	Subject *string `yaml:"subject,omitempty"`

	// (Optional) The value of the service custom field, default is "Content Delivery"
	Service *string `yaml:"service,omitempty"`

	// (Optional) The tags of created tickets, default is ["content delivery"]
	Tags []string `yaml:"tags,omitempty"`

	// (Optional) The custom field IDs. Fields with a zero ID are not sent
	Fields *ZendeskFields `yaml:"fields,omitempty"`
}

type Jira struct {
	// (Required) The base URL of jira, e.g. https://jira.example.com
	URL string `yaml:"url"`

	// (Required) The jira service user
	Username string `yaml:"username"`

	// (Required) The jira service password
	Password string `yaml:"password"`

	// (Required) The project receiving Gov.uk and Great.gov.uk content changes
	ContentProjectID string `yaml:"contentprojectid"`

	// (Optional) The project receiving Digital Workspace content changes
	WorkspaceProjectID string `yaml:"workspaceprojectid,omitempty"`

	// (Optional) The project used when the form has no action, default is the content project
	DefaultProjectID string `yaml:"defaultprojectid,omitempty"`

	// (Optional) Usernames added as watchers of every created issue
	Watchers []string `yaml:"watchers,omitempty"`

	// (Optional) The summary of created issues
	Summary *string `yaml:"summary,omitempty"`

	// (Optional) The URL template of a human facing issue link, "{}" is replaced by the issue key
	IssueURL string `yaml:"issueurl,omitempty"`
}

type Config struct {
	// (Optional) The host of the server, default is localhost
	Host string `yaml:"host,omitempty"`

	// (Optional) The port of the server, default is 8000
	Port int `yaml:"port,omitempty"`

	// (Optional) The externally visible base URL, used to build the OAuth2 callback URL.
	// If not set, the callback URL is derived from the incoming request
	PublicURL string `yaml:"publicurl,omitempty"`

	// (Optional) The port of the metrics server, default is 9020. Set to -1 to disable
	MetricsPort int `yaml:"metricsport,omitempty"`

	// (Optional) The timeout for the request, default is no timeout
	RequestTimeout *time.Duration `yaml:"requesttimeout,omitempty"`

	// (Optional) The ticket backend, either zendesk or jira. Default is zendesk
	Backend string `yaml:"backend,omitempty"`

	Log Log `yaml:"log,omitempty"`

	AuthBroker AuthBroker `yaml:"authbroker"`

	Session Session `yaml:"session,omitempty"`

	Form Form `yaml:"form,omitempty"`

	AV AV `yaml:"av,omitempty"`

	Zendesk Zendesk `yaml:"zendesk,omitempty"`

	Jira Jira `yaml:"jira,omitempty"`
}

func NewConfig() (*Config, error) {
	c := &Config{}
	if err := conf.FetchConfig((func() string {
		if _, err := os.Stat("config.yaml"); err != nil {
			return ""
		}
		return "config.yaml"
	})(), EnvPrefix, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendZendesk
	}
	return c.Backend
}

func (c *Config) Validate() error {
	if c.AuthBroker.URL == "" || c.AuthBroker.ClientID == "" || c.AuthBroker.ClientSecret == "" {
		return errors.New("authbroker url, clientid and clientsecret are required")
	}
	switch c.AuthBroker.Policy {
	case "", PolicyEager, PolicyLocal:
	default:
		return errors.Errorf("unknown authbroker policy %s", c.AuthBroker.Policy)
	}

	switch c.Session.Storage {
	case "", StorageMemory:
	case StorageRedis:
		if c.Session.Redis.Addr == "" {
			return errors.New("session.redis.addr is required when the session storage is redis")
		}
	case StoragePostgres:
		if c.Session.Pg.DSN == nil || *c.Session.Pg.DSN == "" {
			return errors.New("session.pg.dsn is required when the session storage is postgres")
		}
		if u, err := url.Parse(*c.Session.Pg.DSN); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			return errors.New("session.pg.dsn must be a postgres:// URL")
		}
	default:
		return errors.Errorf("unknown session storage %s", c.Session.Storage)
	}

	switch c.GetBackend() {
	case BackendZendesk:
		if (c.Zendesk.Subdomain == "" && c.Zendesk.BaseURL == "") || c.Zendesk.Email == "" || c.Zendesk.Token == "" {
			return errors.New("zendesk subdomain, email and token are required when the backend is zendesk")
		}
	case BackendJira:
		if c.Jira.URL == "" || c.Jira.Username == "" || c.Jira.Password == "" {
			return errors.New("jira url, username and password are required when the backend is jira")
		}
		if c.Jira.ContentProjectID == "" {
			return errors.New("jira.contentprojectid is required when the backend is jira")
		}
		if c.Jira.WorkspaceProjectID != "" && c.Jira.WorkspaceProjectID == c.Jira.ContentProjectID {
			return errors.New("jira content and workspace projects must be different")
		}
	default:
		return errors.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}
