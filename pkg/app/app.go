package app

import (
	"context"

	"github.com/cloudcarver/feedbackform/pkg/app/closer"
	"github.com/cloudcarver/feedbackform/pkg/auth"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/cloudcarver/feedbackform/pkg/hooks"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/metrics"
	"github.com/cloudcarver/feedbackform/pkg/server"
	"github.com/cloudcarver/feedbackform/pkg/service"
)

var log = logger.NewLogAgent("app")

type Application struct {
	server        *server.Server
	prometheus    *metrics.MetricsServer
	closerManager *closer.CloserManager
	globalCtx     *globalctx.GlobalContext
	auth          auth.AuthInterface
	service       service.ServiceInterface
	hooks         *hooks.BaseHook
}

func NewApplication(
	cfg *config.Config,
	globalCtx *globalctx.GlobalContext,
	server *server.Server,
	prometheus *metrics.MetricsServer,
	closerManager *closer.CloserManager,
	auth auth.AuthInterface,
	service service.ServiceInterface,
	hooks *hooks.BaseHook,
) *Application {
	closerManager.Register(func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	log.Infof("submitting change requests to %s", cfg.GetBackend())

	return &Application{
		server:        server,
		prometheus:    prometheus,
		closerManager: closerManager,
		globalCtx:     globalCtx,
		auth:          auth,
		service:       service,
		hooks:         hooks,
	}
}

// Start blocks until the server stops, then releases everything registered
// with the closer manager.
func (a *Application) Start() error {
	go a.prometheus.Start()
	defer a.closerManager.Close()
	defer a.globalCtx.Cancel()
	return a.server.Listen()
}

func (a *Application) GetServer() *server.Server {
	return a.server
}

func (a *Application) GetAuth() auth.AuthInterface {
	return a.auth
}

func (a *Application) GetService() service.ServiceInterface {
	return a.service
}

// GetHooks is used to register hooks before Start.
func (a *Application) GetHooks() *hooks.BaseHook {
	return a.hooks
}
