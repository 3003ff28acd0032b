package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/config"
	logpkg "github.com/kailas-cloud/askdocs/internal/logger"
	"github.com/kailas-cloud/askdocs/internal/metrics"
	"github.com/kailas-cloud/askdocs/internal/repository/docstore"
	"github.com/kailas-cloud/askdocs/internal/repository/vector"
	chiTransport "github.com/kailas-cloud/askdocs/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/askdocs/internal/transport/openai"
	askuc "github.com/kailas-cloud/askdocs/internal/usecase/ask"
	healthuc "github.com/kailas-cloud/askdocs/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/askdocs/internal/usecase/ingest"
	"github.com/kailas-cloud/askdocs/internal/usecase/lexical"
	searchuc "github.com/kailas-cloud/askdocs/internal/usecase/search"
	"github.com/kailas-cloud/askdocs/internal/usecase/semantic"
	"github.com/kailas-cloud/askdocs/internal/version"
)

func main() {
	// Local development keys live in .env; missing file is fine.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askdocs API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("semantic_enabled", cfg.SemanticEnabled()),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	store := docstore.New()
	ranker := lexical.NewRanker()
	synth := lexical.NewSynthesizer(answerMessages(cfg.Answer))

	// Semantic backends are optional — interface vars stay nil when
	// they are absent so the nil checks in the usecases hold.
	// Go gotcha: a typed nil pointer wrapped in an interface != nil.
	var (
		askRetriever    askuc.SemanticRetriever
		searchRetriever searchuc.SemanticRetriever
		generator       askuc.Generator
		vectorPinger    healthuc.VectorPinger
		embedChecker    healthuc.EmbeddingChecker
		ingestEmbedder  ingestuc.Embedder
		ingestVectors   ingestuc.VectorWriter
	)

	if cfg.SemanticEnabled() {
		vectors, err := vector.New(vector.Config{
			Addrs:      cfg.Vector.Addrs,
			Password:   cfg.Vector.Password,
			KeyPrefix:  cfg.Vector.KeyPrefix,
			IndexName:  cfg.Vector.IndexName,
			Dimensions: cfg.Vector.Dimensions,
		})
		if err != nil {
			logger.Fatal("Failed to create vector repository", zap.Error(err))
		}
		defer vectors.Close()

		// An unreachable index at boot is not fatal: queries fall back
		// to the lexical path until it recovers.
		ctx := context.Background()
		readiness := time.Duration(cfg.Vector.ReadinessTimeout) * time.Second
		if err := vectors.WaitForReady(ctx, readiness); err != nil {
			logger.Warn("Vector index not ready, lexical fallback active", zap.Error(err))
		} else if err := vectors.EnsureIndex(ctx); err != nil {
			logger.Warn("Failed to ensure vector index", zap.Error(err))
		} else {
			logger.Info("Connected to vector index",
				zap.Strings("addrs", cfg.Vector.Addrs),
				zap.String("index", cfg.Vector.IndexName),
			)
		}

		embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Logger:  logger,
		})
		gen := openaiTransport.NewGenerator(&openaiTransport.Config{
			APIKey:  cfg.Completion.APIKey,
			BaseURL: cfg.Completion.BaseURL,
			Model:   cfg.Completion.Model,
			Logger:  logger,
		})

		retriever := semantic.New(embedder, vectors)
		askRetriever = retriever
		searchRetriever = retriever
		generator = generatorAdapter{gen: gen}
		vectorPinger = vectors
		embedChecker = embedder
		ingestEmbedder = embedder
		ingestVectors = vectors
	}

	params := askuc.Params{
		SemanticLimit:     cfg.Retrieval.SemanticLimit,
		SemanticThreshold: cfg.Retrieval.SemanticThreshold,
		LexicalLimit:      cfg.Retrieval.LexicalLimit,
		LexicalMinScore:   cfg.Retrieval.LexicalMinScore,
	}

	askSvc := askuc.New(store, ranker, synth, askRetriever, generator, params, logger)
	searchSvc := searchuc.New(store, ranker, searchRetriever, logger)
	ingestSvc := ingestuc.New(store, ingestEmbedder, ingestVectors, logger)
	healthSvc := healthuc.New(store, vectorPinger, embedChecker)

	server := chiTransport.NewServer(askSvc, searchSvc, ingestSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// generatorAdapter narrows the concrete completion stream to the
// usecase's TokenStream interface.
type generatorAdapter struct {
	gen *openaiTransport.Generator
}

func (a generatorAdapter) Complete(ctx context.Context, question, contextText string) (askuc.TokenStream, error) {
	stream, err := a.gen.Complete(ctx, question, contextText)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// answerMessages overlays configured wording on the defaults.
func answerMessages(cfg config.AnswerConfig) lexical.Messages {
	msgs := lexical.DefaultMessages()
	if cfg.NoResults != "" {
		msgs.NoResults = cfg.NoResults
	}
	if cfg.Header != "" {
		msgs.Header = cfg.Header
	}
	if cfg.CountSentence != "" {
		msgs.CountSentence = cfg.CountSentence
	}
	return msgs
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
