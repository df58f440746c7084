package scanner

import (
	"bytes"
	"context"
	"net/http"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/pkg/errors"
)

var log = logger.NewLogAgent("scanner")

var ErrScanFailed = errors.New("failed to scan file")

type Result struct {
	Malware bool   `json:"malware"`
	Reason  string `json:"reason,omitempty"`
}

//go:generate mockgen -source=scanner.go -destination=mock_gen.go -package=scanner
type ScannerInterface interface {
	// Scan checks one uploaded file. An error means the file could not be
	// checked and must be rejected.
	Scan(ctx context.Context, filename string, content []byte) (*Result, error)
}

func NewScanner(cfg *config.Config) ScannerInterface {
	if cfg.AV.URL == "" {
		log.Warn("no antivirus service configured, attachments are not scanned")
		return &Noop{}
	}
	return NewHTTPScanner(cfg.AV.URL, cfg.AV.Username, cfg.AV.Password, nil)
}

// Noop accepts every file.
type Noop struct{}

func (*Noop) Scan(ctx context.Context, filename string, content []byte) (*Result, error) {
	return &Result{}, nil
}

// HTTPScanner posts the file as multipart form data to a scanning service
// answering with {"malware": bool, "reason": string}.
type HTTPScanner struct {
	client *httpx.HTTPClient
}

func NewHTTPScanner(url, username, password string, delegate httpx.HTTPDelegate) *HTTPScanner {
	client := httpx.NewHTTPClient(url, delegate)
	if username != "" {
		client.SetBasicAuth(username, password)
	}
	return &HTTPScanner{client: client}
}

func (s *HTTPScanner) Scan(ctx context.Context, filename string, content []byte) (*Result, error) {
	res, err := s.client.Post(ctx, "").
		WithHeader("Accept", "application/json").
		WithMultipartForm(nil, []httpx.FileData{{Key: "file", Filename: filename, Content: bytes.NewReader(content)}}).
		Do()
	if err != nil {
		return nil, errors.Wrapf(ErrScanFailed, "%v", err)
	}
	if err := res.ExpectStatus(http.StatusOK); err != nil {
		msg := res.Text()
		return nil, errors.Wrapf(ErrScanFailed, "%v, body: %s", err, msg)
	}
	var result Result
	if err := res.JSON(&result); err != nil {
		return nil, errors.Wrapf(ErrScanFailed, "%v", err)
	}
	return &result, nil
}
