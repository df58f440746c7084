package service

import (
	"context"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/hooks"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/metrics"
	"github.com/cloudcarver/feedbackform/pkg/ticket"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("service")

//go:generate mockgen -source=service.go -destination=mock_gen.go -package=service
type ServiceInterface interface {
	// Definition returns the fields of the configured form variant.
	Definition() *form.Definition

	// SubmitChangeRequest validates the submission and creates the ticket.
	// Validation problems are returned as form errors with a nil error, the
	// backend is not called in that case.
	SubmitChangeRequest(ctx context.Context, raw *form.Raw) (*ticket.Result, form.Errors, error)
}

type Service struct {
	validator *form.Validator
	submitter ticket.SubmitterInterface
	hooks     hooks.HookInterface
	now       func() time.Time
}

func NewService(validator *form.Validator, submitter ticket.SubmitterInterface, hooks hooks.HookInterface) ServiceInterface {
	return &Service{
		validator: validator,
		submitter: submitter,
		hooks:     hooks,
		now:       time.Now,
	}
}

func (s *Service) Definition() *form.Definition {
	return s.validator.Definition()
}

func (s *Service) SubmitChangeRequest(ctx context.Context, raw *form.Raw) (*ticket.Result, form.Errors, error) {
	cr, errs := s.validator.Validate(ctx, raw)
	if len(errs) != 0 {
		metrics.ValidationFailures.Inc()
		return nil, errs, nil
	}

	backend := s.submitter.Backend()
	start := s.now()
	result, err := s.submitter.Submit(ctx, cr)
	metrics.TicketSubmissionDuration.WithLabelValues(backend).Observe(s.now().Sub(start).Seconds())
	if err != nil {
		metrics.TicketSubmissions.WithLabelValues(backend, metrics.ResultFailure).Inc()
		return nil, nil, err
	}
	metrics.TicketSubmissions.WithLabelValues(backend, metrics.ResultSuccess).Inc()
	log.Info(
		"ticket created",
		zap.String("backend", backend),
		zap.String("ticket", result.TicketID),
		zap.Int("attachments", len(cr.Attachments)),
	)

	// the ticket exists at this point, a failing hook must not hide it from the user
	if err := s.hooks.OnTicketCreated(ctx, cr, result); err != nil {
		log.Error("ticket created hook failed", zap.String("ticket", result.TicketID), zap.Error(err))
	}
	return result, nil, nil
}
