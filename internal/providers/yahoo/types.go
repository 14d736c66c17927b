package yahoo

// Yahoo Finance API response shapes, trimmed to the fields the dashboard
// consumes.

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// chartResponse wraps the v8 chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *yahooError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators chartIndicators `json:"indicators"`
}

type chartMeta struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

type chartIndicators struct {
	Quote []chartOHLCV `json:"quote"`
}

// chartOHLCV uses pointer slices: Yahoo emits null for bars with no trades.
type chartOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// quoteResponse wraps the v7 quote endpoint.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *yahooError   `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	Currency                   string  `json:"currency"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
	MarketCap                  float64 `json:"marketCap"`
	FiftyTwoWeekHigh           float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            float64 `json:"fiftyTwoWeekLow"`
}

// summaryResponse wraps the v10 quoteSummary endpoint.
type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *yahooError     `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	AssetProfile  *assetProfile  `json:"assetProfile"`
	SummaryDetail *summaryDetail `json:"summaryDetail"`
	Price         *priceModule   `json:"price"`
}

type assetProfile struct {
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
	Website             string `json:"website"`
	Country             string `json:"country"`
	FullTimeEmployees   int    `json:"fullTimeEmployees"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type summaryDetail struct {
	MarketCap     finVal `json:"marketCap"`
	TrailingPE    finVal `json:"trailingPE"`
	DividendYield finVal `json:"dividendYield"`
}

type priceModule struct {
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
	Currency  string `json:"currency"`
	MarketCap finVal `json:"marketCap"`
}

// finVal is Yahoo's {raw, fmt} numeric wrapper.
type finVal struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// searchResponse wraps the v1 search endpoint.
type searchResponse struct {
	Quotes []searchQuote `json:"quotes"`
}

type searchQuote struct {
	Symbol         string `json:"symbol"`
	ShortName      string `json:"shortname"`
	LongName       string `json:"longname"`
	Exchange       string `json:"exchange"`
	QuoteType      string `json:"quoteType"`
	IsYahooFinance bool   `json:"isYahooFinance"`
}
