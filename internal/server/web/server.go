// Package web is the HTTP surface: the gin engine, the gate middleware
// applying per-request authorization, and the auth/product handlers.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/auth"
	"github.com/avolkov/storefront/internal/server/services"
)

// SessionCookieName carries the session token between requests.
const SessionCookieName = "storefront_session"

const shutdownTimeout = 10 * time.Second

type Server struct {
	addr       string
	engine     *gin.Engine
	logger     logging.Logger
	users      *services.UserService
	products   *services.ProductService
	gate       *auth.Gatekeeper
	throttle   *auth.Throttle
	sessionTTL time.Duration
}

func NewServer(addr string, logger logging.Logger, users *services.UserService, products *services.ProductService, gate *auth.Gatekeeper, sessionTTL time.Duration) *Server {
	s := &Server{
		addr:       addr,
		logger:     logger.With("component", "web"),
		users:      users,
		products:   products,
		gate:       gate,
		throttle:   auth.NewThrottle(),
		sessionTTL: sessionTTL,
	}
	s.engine = s.buildRouter()
	return s
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
