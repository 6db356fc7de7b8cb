package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine          *gin.Engine
	mode            string
	port            int64
	shutdownTimeout time.Duration
	handlers        []gin.HandlerFunc
	routes          []func(*gin.Engine)
}

type Option func(*Server)

func defaultServer() *Server {
	return &Server{
		mode:            gin.ReleaseMode,
		port:            8080,
		shutdownTimeout: 15 * time.Second,
	}
}

func WithMode(mode string) Option {
	return func(s *Server) {
		s.mode = mode
	}
}

func WithPort(port int64) Option {
	return func(s *Server) {
		s.port = port
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// WithCustomHandler installs a middleware ahead of recovery and routing.
func WithCustomHandler(handler gin.HandlerFunc) Option {
	return func(s *Server) {
		s.handlers = append(s.handlers, handler)
	}
}

// WithRoutes registers application routes on the engine.
func WithRoutes(register func(*gin.Engine)) Option {
	return func(s *Server) {
		s.routes = append(s.routes, register)
	}
}

func newServer(opts ...Option) *Server {
	s := defaultServer()
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(s.mode)
	s.engine = gin.New()
	s.engine.Use(s.handlers...)
	s.engine.Use(gin.Recovery())
	s.engine.Use(defaultHandler())
	for _, register := range s.routes {
		register(s.engine)
	}
	return s
}

// NewEngine builds the gin engine without serving it.
func NewEngine(opts ...Option) *gin.Engine {
	return newServer(opts...).engine
}

// StartServer serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests for up to the shutdown timeout.
// It returns the listener error if serving fails before that.
func StartServer(ctx context.Context, lg *zap.Logger, opts ...Option) error {
	s := newServer(opts...)

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		lg.Info("starting web server ...", zap.String("address", addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	lg.Info("shutdown web server ...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("web server shutdown timeout", zap.Error(err))
		return err
	}
	lg.Info("web server exiting")
	return nil
}

func defaultHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			return
		}
		switch {
		case c.Request.URL.Path == "/":
			c.AbortWithStatus(http.StatusOK)
		case strings.HasSuffix(c.Request.URL.Path, "/healthcheck"):
			c.AbortWithStatus(http.StatusOK)
		}
	}
}
