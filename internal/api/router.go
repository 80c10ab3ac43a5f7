package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/abtest"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/db"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/market"
	"brand-voice-studio/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Dependencies are the services the router exposes
type Dependencies struct {
	DB        *db.DB
	Generator *content.Generator
	ABTests   *abtest.Service
	Market    *market.Service
	// Metrics is optional; without it /metrics is not mounted.
	Metrics   *metrics.Collector
	Logger    *logrus.Logger
	StaticDir string
}

// Router holds the HTTP multiplexer and dependencies
type Router struct {
	mux             chi.Router
	trainingHandler *TrainingHandler
	contentHandler  *ContentHandler
	abTestHandler   *ABTestHandler
	marketHandler   *MarketHandler
	metrics         *metrics.Collector
	staticDir       string
	log             *logrus.Entry
}

// NewRouter creates a new router with all routes configured
func NewRouter(deps Dependencies) *Router {
	var recorder ContentRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	r := &Router{
		mux:             chi.NewRouter(),
		trainingHandler: NewTrainingHandler(deps.DB, deps.Generator, deps.Logger),
		contentHandler:  NewContentHandler(deps.Generator, recorder, deps.Logger),
		abTestHandler:   NewABTestHandler(deps.ABTests, deps.Generator, deps.Logger),
		marketHandler:   NewMarketHandler(deps.Market, deps.Logger),
		metrics:         deps.Metrics,
		staticDir:       deps.StaticDir,
		log:             logging.Component(deps.Logger, "http"),
	}
	r.setupRoutes()
	return r
}

// setupRoutes configures all HTTP routes
func (r *Router) setupRoutes() {
	r.mux.Use(middleware.RequestID)
	r.mux.Use(recoverer(r.log))
	if r.metrics != nil {
		r.mux.Use(r.metrics.Middleware)
		r.mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	}

	// Health check
	r.mux.Get("/health", HealthHandler)

	// Brand voice routes
	r.mux.Route("/api/brand-voice", func(br chi.Router) {
		br.Post("/train", r.trainingHandler.Train)
		br.Get("/samples", r.trainingHandler.ListSamples)
		br.Get("/samples/{id}", r.trainingHandler.GetSample)
		br.Get("/training-status", r.trainingHandler.TrainingStatus)
		br.Get("/voice-profile", r.trainingHandler.VoiceProfile)
		br.Post("/analyze-text", r.trainingHandler.AnalyzeText)
		br.Get("/sample-analysis", r.trainingHandler.SampleAnalysis)
		br.Post("/generate-content", r.trainingHandler.GenerateContent)
	})
	r.mux.Get("/api/learning/content-recommendations", r.trainingHandler.Recommendations)

	// Content routes
	r.mux.Post("/api/content/generate", r.contentHandler.Generate)
	r.mux.Get("/api/content/analytics", r.contentHandler.Analytics)

	// A/B testing routes
	r.mux.Route("/api/ab-testing", func(ar chi.Router) {
		ar.Post("/create-test", r.abTestHandler.CreateTest)
		ar.Post("/start-test/{id}", r.abTestHandler.StartTest)
		ar.Post("/update-performance", r.abTestHandler.UpdatePerformance)
		ar.Get("/analyze-results/{id}", r.abTestHandler.AnalyzeResults)
		ar.Get("/tests", r.abTestHandler.ListTests)
		ar.Get("/test/{id}", r.abTestHandler.GetTest)
		ar.Delete("/test/{id}", r.abTestHandler.DeleteTest)
		ar.Get("/variation-strategies", r.abTestHandler.VariationStrategies)
	})

	// Market data routes
	r.mux.Route("/api/market-data", func(mr chi.Router) {
		mr.Get("/current-stats", r.marketHandler.CurrentStats)
		mr.Get("/market-trends", r.marketHandler.Trends)
		mr.Get("/market-insights", r.marketHandler.Insights)
		mr.Post("/refresh-data", r.marketHandler.Refresh)
		mr.Get("/data-status", r.marketHandler.Status)
	})

	// Static file serving (for frontend)
	if r.staticDir != "" {
		r.mux.Get("/*", r.serveStatic)
	}
}

// serveStatic serves static files from the static directory
func (r *Router) serveStatic(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	filePath := filepath.Join(r.staticDir, filepath.FromSlash(filepath.Clean("/"+path)))

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		// Serve index.html for SPA routing
		filePath = filepath.Join(r.staticDir, "index.html")
	}

	http.ServeFile(w, req, filePath)
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()

	// Add CORS headers for development
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if req.Method == http.MethodOptions {
		r.log.WithField("path", req.URL.Path).Debug("CORS preflight")
		w.WriteHeader(http.StatusOK)
		return
	}

	// Skip logging for static files, metrics and health checks
	shouldLog := strings.HasPrefix(req.URL.Path, "/api/")

	if shouldLog {
		r.log.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
		}).Debug("Request started")
	}

	// Wrap response writer to capture status code
	wrapped := newResponseWriter(w)
	r.mux.ServeHTTP(wrapped, req)

	if shouldLog {
		r.log.WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   wrapped.statusCode,
			"duration": time.Since(start).String(),
		}).Info("Request completed")
	}
}
