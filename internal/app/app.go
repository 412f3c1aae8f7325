package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/tuannvm/godenodo/internal/apperr"
	"github.com/tuannvm/godenodo/internal/auth"
	"github.com/tuannvm/godenodo/internal/client"
	"github.com/tuannvm/godenodo/internal/config"
	"github.com/tuannvm/godenodo/internal/logging"
	"github.com/tuannvm/godenodo/internal/services/denodo"
)

// Endpoints are the portal URLs a run talks to. The zero value selects the
// Denodo portal; tests point them at local servers.
type Endpoints struct {
	LoginURL  string
	SearchURL string
}

// App wires one run: a single session shared by the resolver and the
// Denodo service.
type App struct {
	stdout   io.Writer
	logger   *slog.Logger
	session  *client.Client
	resolver *auth.Resolver
	service  *denodo.Service
}

// New builds the session, resolver and service for one run.
func New(cfg *config.Config, stdout io.Writer, endpoints Endpoints) (*App, error) {
	logger := setupLogger(cfg)

	var masker *logging.Masker
	if cfg.Redact {
		masker = logging.NewMasker("username", "user")
	}
	console := logging.NewConsole(stdout, masker)

	session, err := client.New(
		client.WithTimeout(cfg.Timeout),
		client.WithRateLimit(rate.Limit(cfg.RateLimit), 10),
		client.WithUserAgent(cfg.UserAgent),
		client.WithLogger(logging.WithComponent(logger, "http")),
	)
	if err != nil {
		return nil, err
	}

	resolverOpts := []auth.ResolverOption{
		auth.WithConsole(console),
		auth.WithLogger(logging.WithComponent(logger, "auth")),
	}
	serviceOpts := []denodo.Option{
		denodo.WithConsole(console),
		denodo.WithLogger(logging.WithComponent(logger, "denodo")),
	}
	if endpoints.LoginURL != "" {
		resolverOpts = append(resolverOpts, auth.WithLoginURL(endpoints.LoginURL))
		serviceOpts = append(serviceOpts, denodo.WithLoginURL(endpoints.LoginURL))
	}
	if endpoints.SearchURL != "" {
		serviceOpts = append(serviceOpts, denodo.WithSearchURL(endpoints.SearchURL))
	}

	return &App{
		stdout:   stdout,
		logger:   logger,
		session:  session,
		resolver: auth.NewResolver(session, resolverOpts...),
		service:  denodo.NewService(session, serviceOpts...),
	}, nil
}

// Resolver returns the run's credential/token resolver.
func (a *App) Resolver() *auth.Resolver { return a.resolver }

// Service returns the run's Denodo service.
func (a *App) Service() *denodo.Service { return a.service }

// Session returns the run's HTTP session.
func (a *App) Session() *client.Client { return a.session }

// Search resolves the login form, logs in and searches once, returning the
// raw response body.
func (a *App) Search(ctx context.Context, args config.Args) (string, error) {
	form, err := a.resolver.Resolve(ctx, args.CredentialsPath)
	if err != nil {
		return "", err
	}
	return a.service.Execute(ctx, form, args.SearchTerm)
}

// Run executes one search and prints the result to stdout.
func (a *App) Run(ctx context.Context, args config.Args) error {
	body, err := a.Search(ctx, args)
	if err != nil {
		a.logger.Debug("run failed", "kind", apperr.KindOf(err).String(), "error", err)
		return err
	}
	fmt.Fprintf(a.stdout, "search output: %s\n", body)
	return nil
}

// ReportError prints err the way a failed run is reported on the console.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if denodo.FromService(err) {
		fmt.Fprintf(w, "Error executing requests to Denodo endpoints: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			slog.Debug("received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func setupLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Debug:  cfg.Debug,
		File:   cfg.LogFile,
	})
	slog.SetDefault(logger)
	return logger
}
