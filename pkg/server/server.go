package server

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudcarver/feedbackform/pkg/auth"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/controller"
	"github.com/cloudcarver/feedbackform/pkg/globalctx"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/session"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"github.com/cloudcarver/feedbackform/pkg/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("server")

const (
	DefaultPort = 8000
	DefaultHost = "localhost"

	// attachments are held in memory, five of them must fit
	BodyLimit = 50 * 1024 * 1024
)

type Server struct {
	app             *fiber.App
	host            string
	port            int
	globalCtx       *globalctx.GlobalContext
	libCfg          *config.LibConfig
	skipLogRequest  func(c *fiber.Ctx) bool
	skipLogResponse func(c *fiber.Ctx) bool
}

func NewServer(
	cfg *config.Config,
	libCfg *config.LibConfig,
	globalCtx *globalctx.GlobalContext,
	auth auth.AuthInterface,
	ctl *controller.Controller,
	sessions session.StoreInterface,
) (*Server, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
		BodyLimit:    BodyLimit,
		Views:        views.New(),
		ViewsLayout:  views.Layout,
	})

	var port = DefaultPort
	if cfg.Port != 0 {
		port = cfg.Port
	} else {
		log.Infof("Using default port: %d", port)
	}

	var host = DefaultHost
	if cfg.Host != "" {
		host = cfg.Host
	} else {
		log.Infof("Using default host: %s", host)
	}

	s := &Server{
		app:       app,
		host:      host,
		port:      port,
		globalCtx: globalCtx,
		libCfg:    libCfg,
	}

	s.skipLogRequest = func(c *fiber.Ctx) bool { return false }
	s.skipLogResponse = func(c *fiber.Ctx) bool { return false }
	if libCfg.Log != nil && libCfg.Log.HealthCheckPath != nil {
		var healthPath = *libCfg.Log.HealthCheckPath
		s.skipLogRequest = func(c *fiber.Ctx) bool {
			return c.Path() == healthPath
		}
		s.skipLogResponse = func(c *fiber.Ctx) bool {
			return c.Path() == healthPath && c.Response().StatusCode() < 400
		}
		app.Get(healthPath, func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
	}

	s.registerMiddleware()

	if cfg.RequestTimeout != nil {
		timeout := *cfg.RequestTimeout
		app.Use(func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
			return c.Next()
		})
	}

	app.Use(sessions.Middleware())

	app.Get(authLogin, auth.Login)
	app.Get(authCallback, auth.Callback)
	app.Get(authLogout, auth.Logout)
	app.Get(authLoggedOut, ctl.LoggedOut)

	app.Get("/", auth.LoginRequired(ctl.GetForm))
	app.Post("/", auth.LoginRequired(ctl.PostForm))
	app.Get(controller.SuccessPath, auth.LoginRequired(ctl.Success))

	return s, nil
}

func (s *Server) registerMiddleware() {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	if s.libCfg.Cors != nil {
		s.app.Use(cors.New(*s.libCfg.Cors))
	}

	s.app.Use(requestid.New())
	s.app.Use(func(c *fiber.Ctx) error {
		// log request
		start := time.Now()
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		if !s.skipLogRequest(c) {
			log.Info(
				"request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request-id", rid),
			)
		}

		err := c.Next()

		// log response, bodies are html pages and never logged
		if !s.skipLogResponse(c) {
			log.Info(
				"response",
				zap.Int("status", c.Response().StatusCode()),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request-id", rid),
				zap.Float32("latency-ms", float32(time.Since(start).Milliseconds())),
				zap.Error(err),
			)
		}
		return err
	})
}

func (s *Server) Listen() error {
	// Create a channel to receive shutdown signal
	shutdownChan := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Infof("listening on %s:%d", s.host, s.port)
		if err := s.app.Listen(fmt.Sprintf("%s:%d", s.host, s.port)); err != nil {
			shutdownChan <- err
		}
	}()

	// Wait for either context cancellation or server error
	select {
	case err := <-shutdownChan:
		return err
	case <-s.globalCtx.Context().Done():
		log.Info("shutting down server due to context cancellation")
		return s.app.Shutdown()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) GetHost() string {
	return s.host
}

func (s *Server) GetPort() int {
	return s.port
}
