// Command server exposes the Owens Valley Paiute sentence builder as a
// JSON REST API.
//
// Endpoints (also served under /api):
//
//	GET  /healthz
//	POST /builder/choices      body: selection
//	POST /builder/random       body: selection [+ "seed"]
//	POST /builder/describe     body: selection
//	POST /translator/simple    body: {"sentences":[...], "seed":n}
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kubishi/ovp"
	"github.com/kubishi/ovp/internal/app"
	"github.com/kubishi/ovp/internal/config"
	"github.com/kubishi/ovp/internal/render"
	"github.com/kubishi/ovp/internal/transport/middleware"
	"go.uber.org/zap"
)

// routes registers every endpoint at its bare path and under /api.
func routes(logger *zap.Logger, lex *ovp.Lexicon, f *render.Formatter, maxBytes int64) *http.ServeMux {
	handlers := map[string]http.HandlerFunc{
		"/healthz":           handleHealth(logger),
		"/builder/choices":   handleChoices(logger, lex, f, maxBytes),
		"/builder/random":    handleRandom(logger, lex, f, maxBytes),
		"/builder/describe":  handleDescribe(logger, lex, maxBytes),
		"/translator/simple": handleTranslateSimple(logger, lex, maxBytes),
	}
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
		mux.HandleFunc("/api"+path, h)
	}
	return mux
}

// middlewares is the chain every route is served through. RequestID runs
// first so recovered panics are logged with the request id.
func middlewares(cfg *config.Config, logger *zap.Logger) middleware.Middleware {
	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)
}

// newHandler wraps the routes in the middleware chain.
func newHandler(cfg *config.Config, logger *zap.Logger, lex *ovp.Lexicon, f *render.Formatter) http.Handler {
	return middlewares(cfg, logger)(routes(logger, lex, f, cfg.Server.MaxBodyBytes))
}

func loadLexicon(cfg config.LexiconConfig, logger *zap.Logger) (*ovp.Lexicon, error) {
	if cfg.DataDir == "" {
		return ovp.Embedded(ovp.WithLogger(logger))
	}
	return ovp.New(cfg.DataDir, ovp.WithLogger(logger))
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	lex, err := loadLexicon(cfg.Lexicon, logger)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	f, err := render.NewFormatter(cfg.Cache.OptionsSize)
	if err != nil {
		return fmt.Errorf("formatter: %w", err)
	}
	logger.Info("lexicon loaded",
		zap.String("data_dir", cfg.Lexicon.DataDir),
		zap.Int("nouns", lex.Nouns().Len()),
		zap.Int("verbs", len(lex.Verbs())),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(cfg, logger, lex, f),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("version", app.BuildVersion()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
