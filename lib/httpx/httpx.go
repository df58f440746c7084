package httpx

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	neturl "net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type H = map[string]any

type FileData struct {
	Key      string
	Filename string
	Content  io.Reader
}

type HTTPDelegate interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPClient struct {
	base    string
	m       sync.RWMutex
	headers http.Header
	client  HTTPDelegate
}

func NewHTTPClient(base string, httpDelegate ...HTTPDelegate) *HTTPClient {
	var delegate HTTPDelegate
	if len(httpDelegate) != 0 && httpDelegate[0] != nil {
		delegate = httpDelegate[0]
	} else {
		delegate = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		}
	}
	return &HTTPClient{
		base:    strings.TrimRight(base, "/"),
		headers: http.Header{},
		client:  delegate,
	}
}

func (c *HTTPClient) SetHeader(key, val string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.headers.Set(key, val)
}

func (c *HTTPClient) UnsetHeader(key string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.headers.Del(key)
}

// SetBasicAuth sends the credentials with every request of this client.
func (c *HTTPClient) SetBasicAuth(username, password string) {
	raw := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	c.SetHeader("Authorization", "Basic "+raw)
}

type RequestContext struct {
	c       *HTTPClient
	ctx     context.Context
	method  string
	path    string
	body    io.Reader
	headers http.Header
	query   map[string][]string
	errors  []error
}

type ResponseHelper struct {
	*http.Response
}

func (c *HTTPClient) startRequest(ctx context.Context, method string, path string) *RequestContext {
	c.m.RLock()
	headers := c.headers.Clone()
	c.m.RUnlock()
	return &RequestContext{
		c:       c,
		ctx:     ctx,
		method:  method,
		query:   map[string][]string{},
		headers: headers,
		path:    path,
	}
}

func (c *HTTPClient) Get(ctx context.Context, path string) *RequestContext {
	return c.startRequest(ctx, http.MethodGet, path)
}

func (c *HTTPClient) Post(ctx context.Context, path string) *RequestContext {
	return c.startRequest(ctx, http.MethodPost, path)
}

func (c *HTTPClient) Put(ctx context.Context, path string) *RequestContext {
	return c.startRequest(ctx, http.MethodPut, path)
}

func (rc *RequestContext) handleErr(err error) {
	if err == nil {
		return
	}
	rc.errors = append(rc.errors, err)
}

func (rc *RequestContext) WithQuery(key string, vals ...string) *RequestContext {
	rc.query[key] = append(rc.query[key], vals...)
	return rc
}

func (rc *RequestContext) WithJSON(data any) *RequestContext {
	raw, err := json.Marshal(data)
	rc.handleErr(err)
	if err == nil {
		rc.body = bytes.NewReader(raw)
	}
	rc.headers.Set("Content-Type", "application/json")
	return rc
}

// WithBody sends r as is.
func (rc *RequestContext) WithBody(r io.Reader, contentType string) *RequestContext {
	rc.body = r
	rc.headers.Set("Content-Type", contentType)
	return rc
}

func (rc *RequestContext) WithMultipartWriter(fn func(w *multipart.Writer) error) *RequestContext {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := fn(writer); err != nil {
		rc.handleErr(err)
	}
	if err := writer.Close(); err != nil {
		rc.handleErr(err)
	}
	rc.body = body
	rc.headers.Set("Content-Type", writer.FormDataContentType())
	return rc
}

func ContentTypeFromFilename(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func createFormFile(w *multipart.Writer, fieldname, filename string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(fieldname), escapeQuotes(filename)))
	h.Set("Content-Type", ContentTypeFromFilename(filename))
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (rc *RequestContext) WithMultipartForm(fields map[string]string, files []FileData) *RequestContext {
	return rc.WithMultipartWriter(func(w *multipart.Writer) error {
		for _, file := range files {
			part, err := createFormFile(w, file.Key, file.Filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return err
			}
		}
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (rc *RequestContext) WithHeader(key, val string) *RequestContext {
	rc.headers.Set(key, val)
	return rc
}

func (rc *RequestContext) url() (string, error) {
	urlStr, err := neturl.JoinPath(rc.c.base, strings.Split(rc.path, "/")...)
	if err != nil {
		return "", err
	}
	// JoinPath drops the trailing slash of the last element, some APIs need it
	if strings.HasSuffix(rc.path, "/") && !strings.HasSuffix(urlStr, "/") {
		urlStr += "/"
	}
	return urlStr, nil
}

func (rc *RequestContext) Do() (*ResponseHelper, error) {
	if len(rc.errors) != 0 {
		msg := ""
		for _, e := range rc.errors {
			msg += fmt.Sprintf("%v;", e)
		}
		return nil, fmt.Errorf("failed to construct request: %s", msg)
	}

	urlStr, err := rc.url()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct URL, base: %s, path: %s", rc.c.base, rc.path)
	}

	req, err := http.NewRequestWithContext(rc.ctx, rc.method, urlStr, rc.body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct request, method: %s, url: %s", rc.method, urlStr)
	}

	query := req.URL.Query()
	for k, v := range rc.query {
		for _, vv := range v {
			query.Add(k, vv)
		}
	}
	req.URL.RawQuery = query.Encode()

	req.Header = rc.headers

	res, err := rc.c.client.Do(req)
	if err != nil {
		// headers are left out, they carry credentials
		return nil, errors.Wrapf(err, "failed to send request, method: %s, path: %s", rc.method, rc.path)
	}
	return NewResponseHelper(res), nil
}

func NewResponseHelper(res *http.Response) *ResponseHelper {
	return &ResponseHelper{res}
}

func (rh *ResponseHelper) Bytes() ([]byte, error) {
	defer rh.Body.Close()
	return io.ReadAll(rh.Body)
}

func (rh *ResponseHelper) Text() string {
	raw, err := rh.Bytes()
	if err != nil {
		return err.Error()
	}
	return string(raw)
}

func (rh *ResponseHelper) JSON(data any) error {
	raw, err := rh.Bytes()
	if err != nil {
		return errors.Wrap(err, "failed to read body from HTTP response")
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return errors.Wrapf(err, "failed to unmarshal JSON, body: %s", truncate(string(raw), 256))
	}
	return nil
}

// Close drains and closes the body, use it when the body is not needed.
func (rh *ResponseHelper) Close() {
	_, _ = io.Copy(io.Discard, rh.Body)
	_ = rh.Body.Close()
}

func (rh *ResponseHelper) ExpectStatusWithMessage(msg string, statusCodes ...int) error {
	for _, c := range statusCodes {
		if rh.StatusCode == c {
			return nil
		}
	}
	if len(msg) == 0 {
		return fmt.Errorf("unexpected status code: %d, expecting: %v", rh.StatusCode, statusCodes)
	}
	return fmt.Errorf("%s, unexpected status code: %d, expecting: %v", msg, rh.StatusCode, statusCodes)
}

func (rh *ResponseHelper) ExpectStatus(statusCodes ...int) error {
	return rh.ExpectStatusWithMessage("", statusCodes...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
