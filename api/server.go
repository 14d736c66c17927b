// Package api provides the HTTP REST API server for StockPulse.
//
// It exposes endpoints for quotes, price history, company info, scored
// news, the synthetic social feed, sentiment summaries and WebSocket
// streaming of analysis updates.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tradewatch/stockpulse/internal/config"
	"github.com/tradewatch/stockpulse/internal/dashboard"
	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
	"github.com/tradewatch/stockpulse/web"
)

// Version is stamped by the CLI at startup from its ldflags build info.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	svc     *dashboard.Service
	wsHub   *WSHub
	serveUI bool // when true, serve the embedded landing page at /
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, svc *dashboard.Service) *Server {
	srv := &Server{
		cfg:     cfg,
		svc:     svc,
		wsHub:   NewWSHub(),
		serveUI: true,
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetServeUI controls whether the embedded landing page is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the websocket hub, for broadcast from other components.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

// ListenAndServe starts the HTTP server with graceful shutdown on
// SIGINT/SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout()))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/config", s.handleGetConfig)

		// Market data
		r.Get("/quote/{ticker}", s.handleQuote)
		r.Get("/history/{ticker}", s.handleHistory)
		r.Get("/info/{ticker}", s.handleInfo)
		r.Get("/search", s.handleSearch)
		r.Get("/comparables/{ticker}", s.handleComparables)

		// Sentiment
		r.Get("/news/{ticker}", s.handleNews)
		r.Get("/social/{ticker}", s.handleSocial)
		r.Get("/sentiment/{ticker}", s.handleSentiment)
		r.Post("/analyze", s.handleAnalyze)
	})

	r.Get("/ws", s.handleWebSocket)

	if s.serveUI {
		r.Get("/", s.handleIndex)
	}

	return r
}

// handleIndex serves the embedded landing page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(web.IndexHTML()) //nolint:errcheck
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Ticker string `json:"ticker"`
	Days   int    `json:"days,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "ok",
			"version":    Version,
			"nse_market": utils.MarketStatusAt("NSE", now),
			"us_market":  utils.MarketStatusAt("US", now),
			"time_utc":   utils.FormatDateTimeUTC(now),
		},
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	quote, err := s.svc.Quote(r.Context(), ticker)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: quote})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1M"
	}

	series, err := s.svc.History(r.Context(), ticker, period)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: series})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	info, err := s.svc.Info(r.Context(), ticker)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: info})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := s.svc.Search(r.Context(), q, queryInt(r, "max", 10))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: results})
}

func (s *Server) handleComparables(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	peers, err := s.svc.Comparables(r.Context(), ticker)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: peers})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	days := queryInt(r, "days", s.cfg.News.Days)
	max := queryInt(r, "max", s.cfg.News.MaxArticles)

	articles, err := s.svc.News(r.Context(), ticker, days, max)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: articles})
}

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	days := queryInt(r, "days", s.cfg.News.Days)
	max := queryInt(r, "max", s.cfg.Social.MaxPosts)

	posts, err := s.svc.Social(r.Context(), ticker, days, max)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	// Time order is the generator's default; the ranked list view asks for
	// engagement order.
	if r.URL.Query().Get("sort") == "engagement" {
		sortByEngagement(posts)
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: posts})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	days := queryInt(r, "days", s.cfg.News.Days)

	summary := s.svc.Sentiment(r.Context(), ticker, days)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: summary})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if req.Days <= 0 {
		req.Days = s.cfg.News.Days
	}

	result := s.svc.Analyze(r.Context(), req.Ticker, req.Days)

	s.wsHub.Broadcast(WSMessage{
		Type: "sentiment_update",
		Data: map[string]any{
			"ticker":  result.Ticker,
			"primary": result.Summary.Combined.Primary,
			"total":   result.Summary.Combined.Total,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func sortByEngagement(posts []models.SocialPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Engagement() > posts[j].Engagement()
	})
}
