// Package api — dashboard bootstrap endpoint.
package api

import (
	"net/http"

	"github.com/tradewatch/stockpulse/internal/config"
	"github.com/tradewatch/stockpulse/internal/providers/yahoo"
)

// BootstrapConfig is the payload served to dashboard clients on startup.
// It carries everything the UI needs to render its selectors before the
// first data request.
type BootstrapConfig struct {
	Markets         []string            `json:"markets"`
	DefaultTickers  map[string][]string `json:"default_tickers"`
	Periods         []string            `json:"periods"`
	ChartTypes      []string            `json:"chart_types"`
	LookbackOptions []int               `json:"lookback_options"`
	NewsDays        int                 `json:"news_days"`
	MaxArticles     int                 `json:"max_articles"`
	MaxPosts        int                 `json:"max_posts"`
	Blend           string              `json:"blend"`
}

// handleGetConfig returns the dashboard bootstrap configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: BootstrapConfig{
			Markets:         config.Markets,
			DefaultTickers:  config.DefaultTickers,
			Periods:         yahoo.Periods(),
			ChartTypes:      config.ChartTypes,
			LookbackOptions: config.LookbackOptions,
			NewsDays:        s.cfg.News.Days,
			MaxArticles:     s.cfg.News.MaxArticles,
			MaxPosts:        s.cfg.Social.MaxPosts,
			Blend:           s.cfg.Sentiment.Blend,
		},
	})
}
