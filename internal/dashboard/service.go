// Package dashboard orchestrates the dashboard's data flows: it resolves
// providers from the registry, threads fetched text through the sentiment
// pipeline, synthesizes the social feed, and memoizes the expensive
// aggregates. Fetch failures degrade to structured advisories; a summary is
// always producible.
package dashboard

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradewatch/stockpulse/internal/config"
	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/internal/sentiment"
	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
)

// Source names used in summaries and advisories.
const (
	SourceNews   = "news"
	SourceSocial = "social"
)

// Service wires providers, the sentiment core and the cache.
type Service struct {
	registry *provider.Registry
	cache    infra.Store
	cfg      *config.Config
	scorer   *sentiment.Scorer
	newRNG   func() *rand.Rand
}

// Option customizes a Service.
type Option func(*Service)

// WithRandSeed pins the random source for synthetic post generation, so a
// fixed seed reproduces the exact social feed. Without it each generation
// draws from a time-seeded source.
func WithRandSeed(seed int64) Option {
	return func(s *Service) {
		s.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
}

// WithBlend overrides the scoring strategy selected by the config.
func WithBlend(blend sentiment.BlendStrategy) Option {
	return func(s *Service) { s.scorer = sentiment.NewScorer(blend) }
}

// NewService builds the orchestration service. The blend strategy comes from
// cfg.Sentiment.Blend unless overridden by an option.
func NewService(reg *provider.Registry, cache infra.Store, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		registry: reg,
		cache:    cache,
		cfg:      cfg,
		scorer:   sentiment.NewScorer(sentiment.BlendByName(cfg.Sentiment.Blend)),
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scorer exposes the active scorer, for CLI display of the blend in use.
func (s *Service) Scorer() *sentiment.Scorer { return s.scorer }

// --- Market data pass-through ---

// Quote returns the snapshot quote for a ticker.
func (s *Service) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	res, err := s.fetch(ctx, "yahoo", provider.OpQuote, provider.QueryParams{
		provider.ParamTicker: normalize(ticker),
	})
	if err != nil {
		return nil, err
	}
	return res.Data.(*models.Quote), nil
}

// History returns the OHLCV series for a dashboard period label.
func (s *Service) History(ctx context.Context, ticker, period string) (*models.PriceSeries, error) {
	res, err := s.fetch(ctx, "yahoo", provider.OpHistory, provider.QueryParams{
		provider.ParamTicker: normalize(ticker),
		provider.ParamPeriod: period,
	})
	if err != nil {
		return nil, err
	}
	return res.Data.(*models.PriceSeries), nil
}

// Info returns the company profile for a ticker.
func (s *Service) Info(ctx context.Context, ticker string) (*models.StockInfo, error) {
	res, err := s.fetch(ctx, "yahoo", provider.OpInfo, provider.QueryParams{
		provider.ParamTicker: normalize(ticker),
	})
	if err != nil {
		return nil, err
	}
	return res.Data.(*models.StockInfo), nil
}

// Search looks up symbols matching a free-text query.
func (s *Service) Search(ctx context.Context, query string, max int) ([]models.SearchResult, error) {
	res, err := s.fetch(ctx, "yahoo", provider.OpSearch, provider.QueryParams{
		provider.ParamQuery: query,
		provider.ParamMax:   strconv.Itoa(max),
	})
	if err != nil {
		return nil, err
	}
	return res.Data.([]models.SearchResult), nil
}

// Comparables returns the peer list for a ticker's exchange.
func (s *Service) Comparables(ctx context.Context, ticker string) ([]string, error) {
	res, err := s.fetch(ctx, "yahoo", provider.OpComparables, provider.QueryParams{
		provider.ParamTicker: normalize(ticker),
	})
	if err != nil {
		return nil, err
	}
	return res.Data.([]string), nil
}

// --- Sentiment pipeline ---

// News fetches headlines for a ticker and scores each title.
func (s *Service) News(ctx context.Context, ticker string, days, max int) ([]models.ScoredArticle, error) {
	symbol := normalize(ticker)
	res, err := s.fetch(ctx, "rssnews", provider.OpStockNews, provider.QueryParams{
		provider.ParamTicker: symbol,
		provider.ParamDays:   strconv.Itoa(days),
		provider.ParamMax:    strconv.Itoa(max),
	})
	if err != nil {
		return nil, err
	}

	articles := res.Data.([]models.NewsArticle)
	scored := make([]models.ScoredArticle, 0, len(articles))
	for _, a := range articles {
		scored = append(scored, models.ScoredArticle{
			NewsArticle: a,
			Sentiment:   s.scorer.Score(a.Title),
		})
	}
	return scored, nil
}

// Social returns the synthetic social feed derived from the ticker's news.
// The result is memoized for the sentiment TTL so repeated calls within the
// window see the same synthetic sample.
func (s *Service) Social(ctx context.Context, ticker string, days, max int) ([]models.SocialPost, error) {
	symbol := normalize(ticker)
	key := infra.Key("social", symbol, strconv.Itoa(days), strconv.Itoa(max))
	if cached, ok := s.cache.Get(key); ok {
		// Callers may reorder the slice; the cached sample must stay
		// untouched.
		return slices.Clone(cached.([]models.SocialPost)), nil
	}

	res, err := s.fetch(ctx, "rssnews", provider.OpStockNews, provider.QueryParams{
		provider.ParamTicker: symbol,
		provider.ParamDays:   strconv.Itoa(days),
		provider.ParamMax:    strconv.Itoa(s.cfg.News.MaxArticles),
	})
	if err != nil {
		return nil, fmt.Errorf("social feed derives from news: %w", err)
	}

	gen := sentiment.NewGenerator(s.newRNG(), s.scorer)
	posts := gen.FromNews(symbol, res.Data.([]models.NewsArticle), max)

	s.cache.SetWithTTL(key, posts, s.cfg.Cache.SentimentTTL())
	return slices.Clone(posts), nil
}

// Sentiment builds the memoized per-ticker summary over the news and social
// collections. It never fails: source-level fetch errors become advisories
// on the summary and aggregation proceeds with whatever succeeded.
func (s *Service) Sentiment(ctx context.Context, ticker string, days int) models.SentimentSummary {
	symbol := normalize(ticker)
	key := infra.Key("sentiment", symbol, strconv.Itoa(days))
	if cached, ok := s.cache.Get(key); ok {
		return cached.(models.SentimentSummary)
	}

	collections := make(map[string]models.ScoredCollection)
	var advisories []models.SourceError

	articles, err := s.News(ctx, symbol, days, s.cfg.News.MaxArticles)
	if err != nil {
		// Social posts are manufactured from news, so one failure takes
		// out both sources.
		advisories = append(advisories,
			models.SourceError{Source: SourceNews, Kind: models.ErrKindUpstreamFetch, Message: err.Error()},
			models.SourceError{Source: SourceSocial, Kind: models.ErrKindUpstreamFetch, Message: "social feed derives from news: " + err.Error()},
		)
	} else {
		newsItems := make([]models.ScoredItem, 0, len(articles))
		for _, a := range articles {
			newsItems = append(newsItems, models.ScoredItem{Text: a.Title, At: a.PublishedAt, Score: a.Sentiment})
		}
		collections[SourceNews] = models.ScoredCollection{
			Ticker: symbol, Source: SourceNews, Days: days, Items: newsItems,
		}

		// The summary's social stats must describe the same sample the
		// social endpoint serves, so go through the memoized feed.
		posts, err := s.Social(ctx, symbol, days, s.cfg.Social.MaxPosts)
		if err != nil {
			advisories = append(advisories,
				models.SourceError{Source: SourceSocial, Kind: models.ErrKindUpstreamFetch, Message: err.Error()})
		} else {
			socialItems := make([]models.ScoredItem, 0, len(posts))
			for _, p := range posts {
				socialItems = append(socialItems, models.ScoredItem{
					Text: p.Text, At: p.PostedAt, Likes: p.Likes, Retweets: p.Retweets, Score: p.Sentiment,
				})
			}
			collections[SourceSocial] = models.ScoredCollection{
				Ticker: symbol, Source: SourceSocial, Days: days, Items: socialItems,
			}
		}
	}

	summary := sentiment.Summarize(symbol, days, collections, advisories)
	s.cache.SetWithTTL(key, summary, s.cfg.Cache.SentimentTTL())
	return summary
}

// --- Full pipeline ---

// Analysis is the result of one full pipeline run for a ticker.
type Analysis struct {
	Ticker  string                  `json:"ticker"`
	Quote   *models.Quote           `json:"quote,omitempty"`
	Summary models.SentimentSummary `json:"summary"`
	Errors  []models.SourceError    `json:"errors,omitempty"`
}

// Analyze fetches the quote and the sentiment summary concurrently. Either
// source may fail without aborting the run; failures surface as advisories.
func (s *Service) Analyze(ctx context.Context, ticker string, days int) *Analysis {
	symbol := normalize(ticker)
	result := &Analysis{Ticker: symbol}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		quote, err := s.Quote(gctx, symbol)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Errors = append(result.Errors, models.SourceError{
				Source: "quote", Kind: models.ErrKindUpstreamFetch, Message: err.Error(),
			})
			return nil
		}
		result.Quote = quote
		return nil
	})
	g.Go(func() error {
		summary := s.Sentiment(gctx, symbol, days)
		mu.Lock()
		result.Summary = summary
		mu.Unlock()
		return nil
	})

	g.Wait() //nolint:errcheck // goroutines report via advisories, never errors
	return result
}

// --- Internals ---

func (s *Service) fetch(ctx context.Context, providerName string, op provider.Operation, params provider.QueryParams) (*provider.FetchResult, error) {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}
	return p.Fetch(ctx, op, params)
}

// normalize upper-cases and passes suffixed or index symbols through
// unchanged; bare symbols stay bare (US convention).
func normalize(ticker string) string {
	return utils.FormatTicker(ticker, "")
}
