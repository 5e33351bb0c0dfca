// Package http exposes the tracker over a JSON API: transaction edits,
// summary figures and the report time series. The UI consumes these
// endpoints; it never reaches the engine directly.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/services"
)

type Server struct {
	http.Server
	svc          *services.DatasetService
	saveFilePath string
	rateLimiter  *rateLimiter

	// Encoded report responses, purged wholesale on every mutation.
	reportCache *cache.LRU[[]byte]
	janitor     *cache.Janitor

	// Injectable clock so time-dependent views stay testable.
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and the report cache, returning a
// ready-to-run server. Registers itself as the service's change hook.
func NewServer(addr string, svc *services.DatasetService, saveFilePath string, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:          svc,
		saveFilePath: saveFilePath,
		rateLimiter:  newRateLimiter(),
		reportCache:  cache.NewLRU[[]byte](cacheSize, cacheTTL),
		janitor:      cache.NewJanitor(),
		now:          func() time.Time { return time.Now().UTC() },
	}

	s.janitor.Register(s.reportCache)
	go s.janitor.Run(10 * time.Minute)

	svc.OnChange(s.reportCache.Purge)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/dataset", s.withRequestLogging(s.handleDataset))
	mux.HandleFunc("/api/transactions", s.withRequestLogging(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withRequestLogging(s.handleTransactionByID))
	mux.HandleFunc("/api/summary", s.withRequestLogging(s.handleSummary))
	mux.HandleFunc("/api/years", s.withRequestLogging(s.handleYears))
	mux.HandleFunc("/api/spending", s.withRequestLogging(s.handleSpending))
	mux.HandleFunc("/api/savings", s.withRequestLogging(s.handleSavings))
	mux.HandleFunc("/api/spending/daily", s.withRequestLogging(s.handleSpendingDaily))
	mux.HandleFunc("/api/savings/daily", s.withRequestLogging(s.handleSavingsDaily))
	mux.HandleFunc("/api/categories/breakdown", s.withRequestLogging(s.handleCategoryBreakdown))
	mux.HandleFunc("/api/networth/history", s.withRequestLogging(s.handleNetWorthHistory))
	mux.HandleFunc("/api/save", s.withRequestLogging(s.handleSaveToFile))

	return s
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.janitor.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequestLogging adds request logging, rate limiting on mutating
// methods, and baseline security headers.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
