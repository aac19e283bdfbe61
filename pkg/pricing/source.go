package pricing

import (
	"context"
	"fmt"
)

// RateQuery carries the query parameters of a rate fetch. A zero Limit
// means the provider default.
type RateQuery struct {
	Interval string
	Limit    int
}

// MarketDataSource is the upstream provider capability the resolver
// consumes. Implementations live elsewhere (see pkg/kaiko); tests supply
// in-memory fakes.
type MarketDataSource interface {
	// ListInstruments returns the raw instrument catalog.
	ListInstruments(ctx context.Context) ([]Instrument, error)
	// FetchRates returns recent rate samples for an endpoint path, in
	// provider order.
	FetchRates(ctx context.Context, endpoint string, q RateQuery) ([]RateSample, error)
}

// SpotDirectEndpoint is the trade endpoint for a directly traded pair.
func SpotDirectEndpoint(base, quote string) string {
	return fmt.Sprintf("v1/data/trades.v1/spot_direct_exchange_rate/%s/%s/recent", base, quote)
}

// SpotEndpoint is the trade endpoint for the provider's derived spot
// rate family.
func SpotEndpoint(base, quote string) string {
	return fmt.Sprintf("v1/data/trades.v1/spot_exchange_rate/%s/%s/recent", base, quote)
}
