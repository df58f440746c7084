package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	m := NewMetricsServer(&config.Config{}, globalctx.NewWithContext(context.Background()))
	require.Equal(t, DefaultPort, m.port)

	TicketSubmissions.WithLabelValues("zendesk", ResultSuccess).Inc()

	rec := httptest.NewRecorder()
	m.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "feedbackform_ticket_submissions_total")
}

func TestDisabledMetricsServerReturns(t *testing.T) {
	m := NewMetricsServer(&config.Config{MetricsPort: -1}, globalctx.NewWithContext(context.Background()))
	m.Start()
}
