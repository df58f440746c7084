package authbroker

import (
	"sync"

	"github.com/cloudcarver/feedbackform/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// savingTokenSource writes refreshed tokens back to the store. When the
// refresh fails the stored token is removed, so the next request starts
// without a token.
type savingTokenSource struct {
	mu    sync.Mutex
	src   oauth2.TokenSource
	store TokenStore
	last  *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.src.Token()
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.ResultFailure).Inc()
		if cerr := s.store.ClearToken(); cerr != nil {
			log.Error("failed to clear token after failed refresh", zap.Error(cerr))
		}
		return nil, errors.Wrapf(ErrAuthExpired, "failed to refresh token: %v", err)
	}

	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		metrics.TokenRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()
		if err := s.store.SaveToken(tok); err != nil {
			return nil, errors.Wrap(err, "failed to save refreshed token")
		}
		log.Debug("token refreshed")
		s.last = tok
	}
	return tok, nil
}

type expiredSource struct{}

func (expiredSource) Token() (*oauth2.Token, error) {
	return nil, errors.Wrap(ErrAuthExpired, "no token in session")
}
