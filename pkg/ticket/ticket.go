package ticket

import (
	"context"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/pkg/errors"
)

var log = logger.NewLogAgent("ticket")

var ErrSubmissionFailed = errors.New("failed to submit ticket")

type Result struct {
	// TicketID is the numeric zendesk ticket id or the jira issue key
	TicketID string
}

//go:generate mockgen -source=ticket.go -destination=mock_gen.go -package=ticket
type SubmitterInterface interface {
	// Backend names the remote system, used in logs and metrics.
	Backend() string

	// Submit creates the ticket including its attachments. It is not retried.
	Submit(ctx context.Context, cr *form.ChangeRequest) (*Result, error)
}

func NewSubmitter(cfg *config.Config) (SubmitterInterface, error) {
	return newSubmitter(cfg, nil)
}

func newSubmitter(cfg *config.Config, delegate httpx.HTTPDelegate) (SubmitterInterface, error) {
	switch cfg.GetBackend() {
	case config.BackendZendesk:
		return NewZendesk(&cfg.Zendesk, delegate), nil
	case config.BackendJira:
		return NewJira(&cfg.Jira, delegate), nil
	default:
		return nil, errors.Errorf("unknown backend %s", cfg.Backend)
	}
}

func failed(format string, args ...any) error {
	return errors.Wrapf(ErrSubmissionFailed, format, args...)
}
