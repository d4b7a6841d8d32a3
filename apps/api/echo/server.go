package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		CurrencySvc   *currency.Service
		PlanSvc       *plan.Service
		EnrollmentSvc *enrollment.Service
		PayoutSvc     *payout.Service
		IncomeSvc     *income.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestContextMiddleware)
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf.AppName))

	v1 := s.app.Group("/v1")
	registerCurrencyAPI(v1, s.deps.CurrencySvc)
	registerEnrollmentAPI(v1, s.deps.EnrollmentSvc, s.deps.Validate)
	registerPayoutAPI(v1, s.deps.PayoutSvc, s.deps.Validate, conf.Payout.AllowNegativeTotal)
	registerIncomeAPI(v1, s.deps.IncomeSvc, s.deps.Validate)
	registerFormAPI(v1, formDeps{
		planSvc:     s.deps.PlanSvc,
		currencySvc: s.deps.CurrencySvc,
		incomeSvc:   s.deps.IncomeSvc,
	})
}

// Start blocks until the server stops; failures are reported through Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

// ShutdownSignal receives SIGINT & SIGTERM, as well as shutdown requests raised by handlers.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(appName string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+appName+" API!")
	}
}
