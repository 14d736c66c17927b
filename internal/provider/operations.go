package provider

// Operation identifies one data request type a provider can serve.
// The Data payload of a FetchResult depends on the operation:
//
//	OpQuote       → *models.Quote
//	OpHistory     → *models.PriceSeries
//	OpInfo        → *models.StockInfo
//	OpSearch      → []models.SearchResult
//	OpComparables → []string
//	OpStockNews   → []models.NewsArticle
//	OpMarketNews  → []models.NewsArticle
type Operation string

const (
	OpQuote       Operation = "quote"
	OpHistory     Operation = "history"
	OpInfo        Operation = "info"
	OpSearch      Operation = "search"
	OpComparables Operation = "comparables"
	OpStockNews   Operation = "stock_news"
	OpMarketNews  Operation = "market_news"
)
