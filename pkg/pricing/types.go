package pricing

import "github.com/shopspring/decimal"

// Instrument is one entry of the upstream instrument catalog. Asset
// symbols are opaque lower-case strings.
type Instrument struct {
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
	Class      string `json:"class"`
}

// SpotPair is a tradable spot pair derived from the catalog.
type SpotPair struct {
	BaseAsset  string
	QuoteAsset string
}

// RateSample is a single rate observation as reported by the market data
// source. Price and Volume are nil when no trade happened in the window,
// which is valid data rather than an error.
type RateSample struct {
	Timestamp int64            `json:"timestamp"`
	Price     *decimal.Decimal `json:"price"`
	Volume    *decimal.Decimal `json:"volume"`
}

// PathRate is the resolved (price, volume) of one direct or composed
// path. Both fields are always present; a pair with no usable sample
// resolves to the zero rate.
type PathRate struct {
	Price  decimal.Decimal
	Volume decimal.Decimal
}
