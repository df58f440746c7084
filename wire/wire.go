//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/cloudcarver/feedbackform/pkg/app"
	"github.com/cloudcarver/feedbackform/pkg/app/closer"
	"github.com/cloudcarver/feedbackform/pkg/auth"
	"github.com/cloudcarver/feedbackform/pkg/authbroker"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/controller"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/cloudcarver/feedbackform/pkg/hooks"
	"github.com/cloudcarver/feedbackform/pkg/metrics"
	"github.com/cloudcarver/feedbackform/pkg/scanner"
	"github.com/cloudcarver/feedbackform/pkg/server"
	"github.com/cloudcarver/feedbackform/pkg/service"
	"github.com/cloudcarver/feedbackform/pkg/session"
	"github.com/cloudcarver/feedbackform/pkg/session/storage"
	"github.com/cloudcarver/feedbackform/pkg/ticket"
	"github.com/google/wire"
)

func InitializeApplication(cfg *config.Config, libCfg *config.LibConfig) (*app.Application, error) {
	wire.Build(
		globalctx.New,
		closer.NewCloserManager,
		storage.NewStorage,
		session.NewStore,
		authbroker.NewBroker,
		hooks.NewBaseHook,
		wire.Bind(new(hooks.HookInterface), new(*hooks.BaseHook)),
		auth.NewAuth,
		scanner.NewScanner,
		form.NewValidator,
		ticket.NewSubmitter,
		service.NewService,
		controller.NewController,
		server.NewServer,
		metrics.NewMetricsServer,
		app.NewApplication,
	)
	return nil, nil
}
