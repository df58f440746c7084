package httpx

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestRequestURL(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		path     string
		expected string
	}{
		{
			name:     "absolute path with trailing slash",
			base:     "https://sso.example.com",
			path:     "/api/v1/user/me/",
			expected: "https://sso.example.com/api/v1/user/me/",
		},
		{
			name:     "base with trailing slash",
			base:     "https://example.zendesk.com/api/v2/",
			path:     "tickets.json",
			expected: "https://example.zendesk.com/api/v2/tickets.json",
		},
		{
			name:     "nested path",
			base:     "https://jira.example.com",
			path:     "rest/api/2/issue/CR-1/watchers",
			expected: "https://jira.example.com/rest/api/2/issue/CR-1/watchers",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delegate := &NoopHTTPDelegate{Res: newResponse(http.StatusOK, "{}")}
			c := NewHTTPClient(tc.base, delegate)
			res, err := c.Get(context.Background(), tc.path).Do()
			require.NoError(t, err)
			res.Close()
			require.Equal(t, tc.expected, delegate.GetRequest().URL.String())
		})
	}
}

func TestBasicAuthAndJSON(t *testing.T) {
	delegate := &NoopHTTPDelegate{Res: newResponse(http.StatusCreated, `{"id":"10001","key":"CR-1"}`)}
	c := NewHTTPClient("https://jira.example.com", delegate)
	c.SetBasicAuth("bot", "secret")

	res, err := c.Post(context.Background(), "rest/api/2/issue").
		WithJSON(H{"fields": H{"summary": "s"}}).
		WithQuery("notify", "false").
		Do()
	require.NoError(t, err)
	require.NoError(t, res.ExpectStatus(http.StatusCreated))

	var out struct {
		Key string `json:"key"`
	}
	require.NoError(t, res.JSON(&out))
	require.Equal(t, "CR-1", out.Key)

	req := delegate.GetRequest()
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	require.Equal(t, "bot", user)
	require.Equal(t, "secret", pass)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	require.Equal(t, "false", req.URL.Query().Get("notify"))

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"fields":{"summary":"s"}}`, string(raw))
}

func TestHeadersAreNotShared(t *testing.T) {
	delegate := &NoopHTTPDelegate{Res: newResponse(http.StatusOK, "")}
	c := NewHTTPClient("https://example.com", delegate)

	_, err := c.Post(context.Background(), "a").WithHeader("X-Atlassian-Token", "no-check").Do()
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "b").Do()
	require.NoError(t, err)

	reqs := delegate.GetRequests()
	require.Len(t, reqs, 2)
	require.Equal(t, "no-check", reqs[0].Header.Get("X-Atlassian-Token"))
	require.Empty(t, reqs[1].Header.Get("X-Atlassian-Token"))
}

func TestMultipartForm(t *testing.T) {
	delegate := &NoopHTTPDelegate{Res: newResponse(http.StatusOK, "[]")}
	c := NewHTTPClient("https://example.com", delegate)

	_, err := c.Post(context.Background(), "upload").WithMultipartForm(nil, []FileData{
		{Key: "file", Filename: "screen.png", Content: strings.NewReader("png-bytes")},
	}).Do()
	require.NoError(t, err)

	req := delegate.GetRequest()
	require.NoError(t, req.ParseMultipartForm(1<<20))
	fh := req.MultipartForm.File["file"]
	require.Len(t, fh, 1)
	require.Equal(t, "screen.png", fh[0].Filename)
	require.Equal(t, "image/png", fh[0].Header.Get("Content-Type"))

	f, err := fh[0].Open()
	require.NoError(t, err)
	raw, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(raw))
}

func TestExpectStatus(t *testing.T) {
	rh := NewResponseHelper(newResponse(http.StatusNotFound, ""))
	require.NoError(t, rh.ExpectStatus(http.StatusOK, http.StatusNotFound))
	require.EqualError(t, rh.ExpectStatusWithMessage("create issue", http.StatusCreated), "create issue, unexpected status code: 404, expecting: [201]")
}

func TestConstructErrors(t *testing.T) {
	c := NewHTTPClient("https://example.com", &NoopHTTPDelegate{})
	_, err := c.Post(context.Background(), "a").WithJSON(make(chan int)).Do()
	require.Error(t, err)
}
