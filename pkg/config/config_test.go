package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AuthBroker: AuthBroker{
			URL:          "https://sso.example.com",
			ClientID:     "client",
			ClientSecret: "secret",
		},
		Zendesk: Zendesk{
			Subdomain: "example",
			Email:     "bot@example.com",
			Token:     "token",
		},
	}
}

func TestValidate(t *testing.T) {
	dsn := "postgres://localhost/feedback"

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "zendesk defaults",
			mutate: func(c *Config) {},
		},
		{
			name: "missing broker",
			mutate: func(c *Config) {
				c.AuthBroker.ClientSecret = ""
			},
			wantErr: true,
		},
		{
			name: "unknown policy",
			mutate: func(c *Config) {
				c.AuthBroker.Policy = "sometimes"
			},
			wantErr: true,
		},
		{
			name: "zendesk base url instead of subdomain",
			mutate: func(c *Config) {
				c.Zendesk.Subdomain = ""
				c.Zendesk.BaseURL = "http://127.0.0.1:9999"
			},
		},
		{
			name: "zendesk without token",
			mutate: func(c *Config) {
				c.Zendesk.Token = ""
			},
			wantErr: true,
		},
		{
			name: "jira",
			mutate: func(c *Config) {
				c.Backend = BackendJira
				c.Jira = Jira{URL: "https://jira", Username: "u", Password: "p", ContentProjectID: "100", WorkspaceProjectID: "200"}
			},
		},
		{
			name: "jira without content project",
			mutate: func(c *Config) {
				c.Backend = BackendJira
				c.Jira = Jira{URL: "https://jira", Username: "u", Password: "p"}
			},
			wantErr: true,
		},
		{
			name: "jira projects must differ",
			mutate: func(c *Config) {
				c.Backend = BackendJira
				c.Jira = Jira{URL: "https://jira", Username: "u", Password: "p", ContentProjectID: "100", WorkspaceProjectID: "100"}
			},
			wantErr: true,
		},
		{
			name: "unknown backend",
			mutate: func(c *Config) {
				c.Backend = "trello"
			},
			wantErr: true,
		},
		{
			name: "redis without addr",
			mutate: func(c *Config) {
				c.Session.Storage = StorageRedis
			},
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			mutate: func(c *Config) {
				c.Session.Storage = StoragePostgres
				c.Session.Pg.DSN = &dsn
			},
		},
		{
			name: "postgres with keyword dsn",
			mutate: func(c *Config) {
				c.Session.Storage = StoragePostgres
				kv := "host=localhost dbname=feedback"
				c.Session.Pg.DSN = &kv
			},
			wantErr: true,
		},
		{
			name: "unknown storage",
			mutate: func(c *Config) {
				c.Session.Storage = "disk"
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetBackend(t *testing.T) {
	require.Equal(t, BackendZendesk, (&Config{}).GetBackend())
	require.Equal(t, BackendJira, (&Config{Backend: BackendJira}).GetBackend())
}
