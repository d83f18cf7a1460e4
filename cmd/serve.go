package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/mlpipe/internal/model"
	"github.com/sells-group/mlpipe/internal/scoring"
	"github.com/sells-group/mlpipe/internal/text"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the statement classification HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// All artifacts load before the listener: a server that cannot
		// score must not accept traffic.
		tables, err := text.LoadTables(cfg.Tables.CategoryPath, cfg.Tables.CategoryNumPath, cfg.Tables.SourceNumPath)
		if err != nil {
			return err
		}
		if err := tables.Verify(); err != nil {
			return err
		}

		vec, err := scoring.LoadVectorizer(cfg.Model.VectorizerPath)
		if err != nil {
			return err
		}
		xgb, err := scoring.LoadXGBModel(cfg.Model.Path)
		if err != nil {
			return err
		}

		encoder := text.NewEncoder(tables)
		scorer := scoring.NewScorer(vec, xgb)
		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)

		handler := newServeMux(encoder, scorer, limiter)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("classes", xgb.NumClasses()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newServeMux builds the prediction router. The limiter applies to the
// prediction route only; health checks are never throttled.
func newServeMux(encoder *text.Encoder, scorer *scoring.Scorer, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the API!"})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.With(throttle(limiter)).Post("/predict", func(w http.ResponseWriter, req *http.Request) {
		var stmt model.Statement
		if err := json.NewDecoder(req.Body).Decode(&stmt); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if stmt.Text == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
			return
		}

		row, err := encoder.Encode(stmt)
		if err != nil {
			zap.L().Warn("statement encode failed", zap.Error(err))
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": eris.Cause(err).Error()})
			return
		}

		pred, err := scorer.Score(row)
		if err != nil {
			zap.L().Error("scoring failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scoring failed"})
			return
		}

		writeJSON(w, http.StatusOK, pred)
	})

	return r
}

// throttle rejects requests above the configured rate with 429.
func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
