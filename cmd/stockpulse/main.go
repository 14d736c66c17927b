// StockPulse — market sentiment dashboard for NSE/BSE/US stocks.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tradewatch/stockpulse/api"
	"github.com/tradewatch/stockpulse/internal/config"
	"github.com/tradewatch/stockpulse/internal/dashboard"
	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/internal/providers"
	"github.com/tradewatch/stockpulse/internal/providers/yahoo"
	"github.com/tradewatch/stockpulse/internal/sentiment"
	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse — stock market sentiment dashboard",
	Long: `StockPulse
Market data, scored news and sentiment summaries for NSE, BSE and US
stocks, from the command line or as an HTTP API server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars win either way.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./stockpulse.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(socialCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(tickersCmd)
	rootCmd.AddCommand(serveCmd)
}

// newService wires the provider registry, cache and sentiment pipeline.
func newService(opts ...dashboard.Option) (*dashboard.Service, error) {
	cache := infra.NewCache(cfg.Cache.NewsTTL())
	reg := provider.NewRegistry()
	if err := providers.RegisterAllTo(reg, cache); err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}
	return dashboard.NewService(reg, cache, cfg, opts...), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("StockPulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Quote Command ---

var quoteCmd = &cobra.Command{
	Use:   "quote [ticker]",
	Short: "Show the latest quote for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		q, err := svc.Quote(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		arrow := "▲"
		if q.Change < 0 {
			arrow = "▼"
		}
		fmt.Printf("%s (%s) — %s\n", q.Symbol, q.Exchange, q.Name)
		fmt.Printf("  Price:      %.2f %s  %s %.2f (%.2f%%)\n", q.LastPrice, q.Currency, arrow, q.Change, q.ChangePct)
		fmt.Printf("  Day Range:  %.2f – %.2f  (open %.2f, prev close %.2f)\n", q.Low, q.High, q.Open, q.PrevClose)
		fmt.Printf("  Volume:     %d\n", q.Volume)
		if q.WeekHigh52 > 0 {
			fmt.Printf("  52w Range:  %.2f – %.2f\n", q.WeekLow52, q.WeekHigh52)
		}
		fmt.Printf("  Market:     %s\n", utils.MarketStatus(q.Exchange))
		return nil
	},
}

// --- History Command ---

var historyCmd = &cobra.Command{
	Use:   "history [ticker]",
	Short: "Show OHLCV price history for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")

		svc, err := newService()
		if err != nil {
			return err
		}

		series, err := svc.History(cmd.Context(), args[0], period)
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s (%s bars, %d total)\n", series.Ticker, series.Period, series.Interval, len(series.Candles))
		bars := series.Candles
		if len(bars) > 12 {
			fmt.Printf("  ... %d earlier bars elided\n", len(bars)-12)
			bars = bars[len(bars)-12:]
		}
		for _, b := range bars {
			fmt.Printf("  %s  O %.2f  H %.2f  L %.2f  C %.2f  V %d\n",
				b.Timestamp.Format("2006-01-02 15:04"), b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("period", "1M", fmt.Sprintf("time period: %s", strings.Join(yahoo.Periods(), ", ")))
}

// --- Info Command ---

var infoCmd = &cobra.Command{
	Use:   "info [ticker]",
	Short: "Show company profile and key figures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		info, err := svc.Info(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s\n", info.Symbol, info.Name)
		fmt.Printf("  Sector:      %s / %s\n", info.Sector, info.Industry)
		if info.MarketCap > 0 {
			fmt.Printf("  Market Cap:  %.0f\n", info.MarketCap)
		}
		if info.PERatio > 0 {
			fmt.Printf("  P/E:         %.2f\n", info.PERatio)
		}
		if info.DividendYield > 0 {
			fmt.Printf("  Div Yield:   %.2f%%\n", info.DividendYield)
		}
		if info.Website != "" {
			fmt.Printf("  Website:     %s\n", info.Website)
		}
		if info.Summary != "" {
			fmt.Printf("\n%s\n", info.Summary)
		}
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [ticker]",
	Short: "Show recent scored headlines for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		max, _ := cmd.Flags().GetInt("max")

		svc, err := newService()
		if err != nil {
			return err
		}

		articles, err := svc.News(cmd.Context(), args[0], days, max)
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Println("No articles found.")
			return nil
		}

		for _, a := range articles {
			fmt.Printf("%s %s  %s\n", labelIcon(a.Sentiment.Label), a.PublishedAt.Format("Jan 02 15:04"), a.Title)
			fmt.Printf("   %s  compound %+.3f  (%s)\n", a.Sentiment.Label, a.Sentiment.Compound, a.Publisher)
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("days", 7, "lookback window in days")
	newsCmd.Flags().Int("max", 10, "maximum articles")
}

// --- Social Command ---

var socialCmd = &cobra.Command{
	Use:   "social [ticker]",
	Short: "Show the synthetic social feed for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		max, _ := cmd.Flags().GetInt("max")

		var opts []dashboard.Option
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts = append(opts, dashboard.WithRandSeed(seed))
		}

		svc, err := newService(opts...)
		if err != nil {
			return err
		}

		posts, err := svc.Social(cmd.Context(), args[0], days, max)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No posts generated (no source headlines in window).")
			return nil
		}

		for _, p := range posts {
			fmt.Printf("%s %s  %s\n", labelIcon(p.Sentiment.Label), p.PostedAt.Format("Jan 02 15:04"), p.Text)
			fmt.Printf("   ♥ %d  ↻ %d  %s %+.3f\n", p.Likes, p.Retweets, p.Sentiment.Label, p.Sentiment.Compound)
		}
		return nil
	},
}

func init() {
	socialCmd.Flags().Int("days", 7, "lookback window in days")
	socialCmd.Flags().Int("max", 20, "maximum posts")
	socialCmd.Flags().Int64("seed", 0, "random seed for reproducible feeds")
}

// --- Sentiment Command ---

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [ticker]",
	Short: "Show the aggregated sentiment summary for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		var opts []dashboard.Option
		if blend, _ := cmd.Flags().GetString("blend"); blend != "" {
			opts = append(opts, dashboard.WithBlend(sentiment.BlendByName(blend)))
		}

		svc, err := newService(opts...)
		if err != nil {
			return err
		}

		summary := svc.Sentiment(cmd.Context(), args[0], days)

		fmt.Printf("Sentiment: %s (last %d days, %s blend)\n", summary.Ticker, summary.Days, svc.Scorer().BlendName())
		fmt.Printf("  Overall: %s %s  avg compound %+.3f  (%d items)\n",
			labelIcon(summary.Combined.Primary), summary.Combined.Primary,
			summary.Combined.AvgCompound, summary.Combined.Total)
		for _, label := range []models.SentimentLabel{models.LabelPositive, models.LabelNegative, models.LabelNeutral} {
			fmt.Printf("    %-9s %3d  (%.1f%%)\n", label, summary.Combined.Counts[label], summary.Combined.Percentages[label])
		}
		for name, stats := range summary.Sources {
			fmt.Printf("  %s: %d items, primary %s, avg compound %+.3f\n",
				name, stats.Total, stats.Primary, stats.AvgCompound)
		}
		for _, e := range summary.Errors {
			fmt.Printf("  warning [%s/%s]: %s\n", e.Source, e.Kind, e.Message)
		}
		return nil
	},
}

func init() {
	sentimentCmd.Flags().Int("days", 7, "lookback window in days")
	sentimentCmd.Flags().String("blend", "", "scoring blend: canonical or sharpened")
}

// --- Tickers Command ---

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List the default tickers per market",
	Run: func(cmd *cobra.Command, args []string) {
		for _, market := range config.Markets {
			fmt.Printf("%s:\n", market)
			fmt.Printf("  %s\n", strings.Join(config.DefaultTickers[market], ", "))
		}
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr()
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		api.Version = version
		srv := api.NewServer(cfg, svc)

		fmt.Printf("StockPulse API server listening on %s\n", addr)
		fmt.Printf("  NSE market: %s  |  US market: %s  |  %s UTC\n",
			utils.MarketStatus("NSE"), utils.MarketStatus("US"),
			utils.FormatDateTimeUTC(time.Now().UTC()))
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, e.g. 0.0.0.0:8080)")
}

func labelIcon(label models.SentimentLabel) string {
	switch label {
	case models.LabelPositive:
		return "🟢"
	case models.LabelNegative:
		return "🔴"
	default:
		return "⚪"
	}
}
