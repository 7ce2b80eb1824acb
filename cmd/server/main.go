package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-server/internal/http/health"
	"github.com/janisto/hello-server/internal/http/hello"
	"github.com/janisto/hello-server/internal/platform/config"
	applog "github.com/janisto/hello-server/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-server/internal/platform/middleware"
	"github.com/janisto/hello-server/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	defer func() {
		_ = applog.Sync()
	}()
	ctx := context.Background()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(ctx, "invalid configuration", err)
		exit(1)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		applog.LogError(ctx, "listen failed", err, zap.String("addr", cfg.Addr()))
		exit(1)
	}
	logStartup(ctx, cfg.Port)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(sigCtx, ln, newServer(newHandler())); err != nil {
		applog.LogError(ctx, "server error", err)
		exit(1)
	}
	applog.LogInfo(ctx, "server exited")
}

func exit(code int) {
	_ = applog.Sync()
	os.Exit(code)
}

// newHandler builds the router serving GET / and GET /health. Everything else,
// including other methods on those paths, is answered with a 404 problem.
func newHandler() http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.NotFoundHandler())

	router.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		chimiddleware.GetHead,
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	cfg := huma.DefaultConfig("Hello Server", Version)
	// No $schema links and no documentation routes: the router serves exactly
	// the two documented paths.
	cfg.CreateHooks = nil
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	api := humachi.New(router, cfg)

	hello.Register(api)
	health.Register(api)
	return router
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

func logStartup(ctx context.Context, port int) {
	applog.LogInfo(ctx, fmt.Sprintf("Server is running on port %d", port), zap.Int("port", port))
	applog.LogInfo(ctx, fmt.Sprintf("Visit http://localhost:%d to see your server in action", port), zap.Int("port", port))
}

// serve runs srv on ln until it fails or ctx is cancelled, then drains
// in-flight requests for up to shutdownTimeout.
func serve(ctx context.Context, ln net.Listener, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
