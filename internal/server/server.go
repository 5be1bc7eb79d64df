package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	mw "storefront/internal/middleware"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Handlers はルート登録に使うハンドラ一式
type Handlers struct {
	Products *handler.ProductHandler
	Cart     *handler.CartHandler
	Orders   *handler.OrderHandler
	Reviews  *handler.ReviewHandler
}

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	echo   *echo.Echo
}

// New はミドルウェアとルートを組み立てる
func New(cfg config.Config, logger *slog.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mw.RequestLogger(logger))
	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimitRPS),
				Burst: cfg.RateLimitBurst,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusForbidden, handler.ErrorResponse{Error: "forbidden"})
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return c.JSON(http.StatusTooManyRequests, handler.ErrorResponse{Error: "too many requests"})
			},
		}))
	}

	RegisterRoutes(e, cfg, h)

	return &Server{cfg: cfg, logger: logger, echo: e}
}

// テストから直接叩く用
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start はShutdownされるまでブロックする
func (s *Server) Start() error {
	s.logger.Info("starting http server", slog.String("addr", s.cfg.Addr()))
	if err := s.echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return pkgerrors.Wrap(err, "serve http")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return pkgerrors.WithStack(s.echo.Shutdown(ctx))
}
