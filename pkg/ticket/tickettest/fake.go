// Package tickettest runs in-process zendesk and jira APIs for tests.
package tickettest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Request is a request received by a fake API.
type Request struct {
	Method   string
	Path     string
	Query    string
	Header   http.Header
	Body     []byte
	Filename string
}

// Zendesk serves the ticket and upload endpoints of the zendesk API,
// used by tests.
type Zendesk struct {
	*httptest.Server

	mu       sync.Mutex
	NextID   int64
	Requests []Request
	// FailPath makes requests whose path has this prefix fail with 500
	FailPath string
}

func NewZendesk() *Zendesk {
	f := &Zendesk{NextID: 3543}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func record(r *http.Request) Request {
	body, _ := io.ReadAll(r.Body)
	return Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	}
}

func (f *Zendesk) RequestsTo(method, prefix string) []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Request
	for _, r := range f.Requests {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (f *Zendesk) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := record(r)
	f.Requests = append(f.Requests, rec)

	w.Header().Set("Content-Type", "application/json")
	if f.FailPath != "" && strings.HasPrefix(r.URL.Path, f.FailPath) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v2/tickets.json":
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"ticket": map[string]any{"id": f.NextID}})
		f.NextID++
	case r.Method == http.MethodPost && r.URL.Path == "/api/v2/uploads.json":
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"upload": map[string]any{
			"token": fmt.Sprintf("upload-%d", len(f.Requests)),
		}})
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/v2/tickets/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"ticket": map[string]any{}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Jira serves the issue, attachment and watcher endpoints of the jira
// REST API, used by tests.
type Jira struct {
	*httptest.Server

	mu       sync.Mutex
	seq      int
	Requests []Request
	FailPath string
}

func NewJira() *Jira {
	f := &Jira{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *Jira) RequestsTo(method, suffix string) []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Request
	for _, r := range f.Requests {
		if r.Method == method && strings.HasSuffix(r.Path, suffix) {
			out = append(out, r)
		}
	}
	return out
}

func (f *Jira) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rec Request
	if strings.HasSuffix(r.URL.Path, "/attachments") {
		rec = Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}
		if file, fh, err := r.FormFile("file"); err == nil {
			rec.Body, _ = io.ReadAll(file)
			rec.Filename = fh.Filename
			file.Close()
		}
	} else {
		rec = record(r)
	}
	f.Requests = append(f.Requests, rec)

	w.Header().Set("Content-Type", "application/json")
	if f.FailPath != "" && strings.HasSuffix(r.URL.Path, f.FailPath) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":["boom"]}`))
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/rest/api/2/issue":
		var body struct {
			Fields struct {
				Project struct {
					ID string `json:"id"`
				} `json:"project"`
			} `json:"fields"`
		}
		_ = json.Unmarshal(rec.Body, &body)
		f.seq++
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":  fmt.Sprintf("%d", 10000+f.seq),
			"key": fmt.Sprintf("P%s-%d", body.Fields.Project.ID, f.seq),
		})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/attachments"):
		_ = json.NewEncoder(w).Encode([]map[string]any{{"filename": rec.Filename}})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/watchers"):
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
