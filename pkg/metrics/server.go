package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("metrics")

const DefaultPort = 9020

type MetricsServer struct {
	port      int
	server    *http.Server
	globalCtx *globalctx.GlobalContext
}

func NewMetricsServer(cfg *config.Config, globalCtx *globalctx.GlobalContext) *MetricsServer {
	port := cfg.MetricsPort
	if port == 0 {
		port = DefaultPort
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &MetricsServer{
		port:      port,
		globalCtx: globalCtx,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until the global context is cancelled. A negative port
// disables the server.
func (m *MetricsServer) Start() {
	if m.port < 0 {
		log.Info("metrics server is disabled")
		return
	}
	go func() {
		<-m.globalCtx.Context().Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.server.Shutdown(ctx)
	}()

	log.Infof("metrics server listening on :%d", m.port)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("metrics server stopped", zap.Error(err))
	}
}
