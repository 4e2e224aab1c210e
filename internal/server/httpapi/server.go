// Package httpapi serves the CredentialService as JSON over HTTP using echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/dto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// CredentialService is the part of services.CredentialService the
// transport needs.
type CredentialService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*services.AuthResult, error)
}

type HTTPServer struct {
	address string
	svc     CredentialService
	logger  logging.Logger
	echo    *echo.Echo
}

func NewHTTPServer(a string, l logging.Logger, svc CredentialService) *HTTPServer {
	s := &HTTPServer{
		address: a,
		svc:     svc,
		logger:  l.With("module", "http_server"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = dto.NewValidator()
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.accessLog)

	e.GET("/healthz", s.health)
	g := e.Group("/api/v1/auth")
	g.POST("/register", s.register)
	g.POST("/login", s.login)
	g.POST("/verify", s.verify)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler { return s.echo }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		s.logger.Info(req.Context(), "http request",
			"method", req.Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"duration", time.Since(start),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return nil
	}
}

// handleError writes {status, message}. Service errors expose only their
// outward message; unexpected errors are logged and reported as internal.
func (s *HTTPServer) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(he.Code, dto.ErrorResponse{Status: he.Code, Message: msg})
		return
	}

	e := services.AsError(err)
	if e.Kind == services.KindRepository {
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	}
	_ = c.JSON(e.Status(), dto.ErrorResponse{Status: e.Status(), Message: e.Message()})
}
