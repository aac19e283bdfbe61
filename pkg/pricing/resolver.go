package pricing

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
)

// Strategy selects the pricing algorithm for a request.
type Strategy string

const (
	// StrategySpot resolves against the provider's derived spot rate.
	StrategySpot Strategy = "spot_exchange_rate"
	// StrategySpotDirect resolves a directly traded pair. Default.
	StrategySpotDirect Strategy = "spot_direct_exchange_rate"
	// StrategyVWAP composes multi-hop paths through proxy assets and
	// volume-weights them.
	StrategyVWAP Strategy = "vwap"
)

const (
	defaultMaxProxyAssets = 5
	defaultSampleLimit    = 600
	defaultRoundScale     = 0
)

var assetPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Resolver answers exchange rate requests against a single market data
// source. Every resolution fetches what it needs fresh; nothing is
// cached or shared across requests.
type Resolver struct {
	source         MarketDataSource
	maxProxyAssets int
	sampleLimit    int
	roundScale     int32
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithMaxProxyAssets bounds the proxy asset candidate list.
func WithMaxProxyAssets(max int) ResolverOption {
	return func(r *Resolver) {
		if max > 0 {
			r.maxProxyAssets = max
		}
	}
}

// WithSampleLimit sets the sample window requested per rate fetch.
func WithSampleLimit(limit int) ResolverOption {
	return func(r *Resolver) {
		if limit > 0 {
			r.sampleLimit = limit
		}
	}
}

// WithRoundScale sets the decimal scale of the final rounded result.
func WithRoundScale(scale int) ResolverOption {
	return func(r *Resolver) {
		if scale >= 0 {
			r.roundScale = int32(scale)
		}
	}
}

// NewResolver constructs a Resolver over the given source.
func NewResolver(source MarketDataSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:         source,
		maxProxyAssets: defaultMaxProxyAssets,
		sampleLimit:    defaultSampleLimit,
		roundScale:     defaultRoundScale,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request describes one price resolution.
type Request struct {
	Base     string
	Quote    string
	Interval string
	Strategy Strategy
	// Invert returns 1/price: the caller wants quote→base but the path
	// is computed base→quote, kept for job input compatibility.
	Invert bool
	// Limit overrides the configured sample limit when positive.
	Limit int
}

// Resolve validates the request, runs the selected strategy and applies
// inversion plus the single boundary rounding (round half to even).
// Everything before that final step is exact decimal arithmetic.
func (r *Resolver) Resolve(ctx context.Context, req Request) (decimal.Decimal, error) {
	base, quote, err := normalizeAssets(req.Base, req.Quote)
	if err != nil {
		return decimal.Decimal{}, err
	}
	limit := r.sampleLimit
	if req.Limit > 0 {
		limit = req.Limit
	}

	price, err := r.getPrice(ctx, base, quote, req.Interval, req.Strategy, limit)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if req.Invert {
		if price.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("%w: cannot invert zero price for %s/%s", ErrDivisionByZero, base, quote)
		}
		price = decimal.NewFromInt(1).Div(price)
	}
	return price.RoundBank(r.roundScale), nil
}

// GetPrice runs the selected strategy and returns the unrounded rate.
func (r *Resolver) GetPrice(ctx context.Context, base, quote, interval string, strategy Strategy) (decimal.Decimal, error) {
	base, quote, err := normalizeAssets(base, quote)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return r.getPrice(ctx, base, quote, interval, strategy, r.sampleLimit)
}

func (r *Resolver) getPrice(ctx context.Context, base, quote, interval string, strategy Strategy, limit int) (decimal.Decimal, error) {
	switch strategy {
	case StrategySpot:
		return r.firstQualifyingRate(ctx, SpotEndpoint(base, quote), base, quote, interval)
	case StrategyVWAP:
		return r.vwapRate(ctx, base, quote, interval, limit)
	default:
		// spot_direct_exchange_rate, also the fallback for an unset or
		// unknown strategy key.
		return r.firstQualifyingRate(ctx, SpotDirectEndpoint(base, quote), base, quote, interval)
	}
}

func normalizeAssets(base, quote string) (string, string, error) {
	if base == "" || !assetPattern.MatchString(base) {
		return "", "", fmt.Errorf("%w: invalid or missing base asset %q", ErrInvalidInput, base)
	}
	if quote == "" || !assetPattern.MatchString(quote) {
		return "", "", fmt.Errorf("%w: invalid or missing quote asset %q", ErrInvalidInput, quote)
	}
	return strings.ToLower(base), strings.ToLower(quote), nil
}

// firstQualifyingRate serves the two single-pair strategies: absence of
// a usable sample is an error here, unlike the zero default used for
// composed paths.
func (r *Resolver) firstQualifyingRate(ctx context.Context, endpoint, base, quote, interval string) (decimal.Decimal, error) {
	samples, err := r.source.FetchRates(ctx, endpoint, RateQuery{Interval: interval})
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	for _, s := range samples {
		if s.Price != nil {
			return *s.Price, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: no sample for %s/%s", ErrNoRateFound, base, quote)
}

// vwapRate runs the full multi-hop pipeline: catalog → proxy assets →
// one constituent rate per proxy → VWAP.
func (r *Resolver) vwapRate(ctx context.Context, base, quote, interval string, limit int) (decimal.Decimal, error) {
	catalog, err := r.source.ListInstruments(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	pairs := SpotPairs(catalog)
	proxies := ProxyAssets(base, quote, pairs, r.maxProxyAssets)
	logx.WithContext(ctx).Debugf("pricing: base=%s quote=%s proxies=%v", base, quote, proxies)
	if len(proxies) == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: no spot path from %s to %s", ErrNoRateFound, base, quote)
	}

	// All constituent paths are fetched concurrently; results land in
	// index-addressed slots so completion order does not matter.
	constituents := make([]PathRate, len(proxies))
	jobs := make([]func() error, len(proxies))
	for i, proxy := range proxies {
		i, proxy := i, proxy
		jobs[i] = func() error {
			var rate PathRate
			var err error
			if proxy == quote {
				rate, err = r.directRate(ctx, base, quote, interval, limit)
			} else {
				rate, err = r.composedRate(ctx, base, proxy, quote, interval, limit)
			}
			if err != nil {
				return err
			}
			constituents[i] = rate
			return nil
		}
	}
	if err := mr.Finish(jobs...); err != nil {
		return decimal.Decimal{}, err
	}

	aggregate, err := VWAP(constituents)
	if err != nil {
		return decimal.Decimal{}, err
	}
	logx.WithContext(ctx).Debugf("pricing: base=%s quote=%s constituents=%d vwap=%s volume=%s",
		base, quote, len(constituents), aggregate.Price, aggregate.Volume)
	return aggregate.Price, nil
}

// composedRate fetches both legs of a two-hop path concurrently and
// composes them. Composition is pure over the joined results.
func (r *Resolver) composedRate(ctx context.Context, base, proxy, quote, interval string, limit int) (PathRate, error) {
	var baseLeg, quoteLeg PathRate
	err := mr.Finish(
		func() (err error) {
			baseLeg, err = r.directRate(ctx, base, proxy, interval, limit)
			return err
		},
		func() (err error) {
			quoteLeg, err = r.directRate(ctx, proxy, quote, interval, limit)
			return err
		},
	)
	if err != nil {
		return PathRate{}, err
	}
	return ComposeTwoHop(baseLeg, quoteLeg), nil
}

// directRate fetches one direct pair rate for a constituent path. The
// first sample with a non-nil price wins; no qualifying sample yields
// the zero rate, which later stages treat as "no liquidity on this leg"
// rather than an error.
func (r *Resolver) directRate(ctx context.Context, base, quote, interval string, limit int) (PathRate, error) {
	samples, err := r.source.FetchRates(ctx, SpotDirectEndpoint(base, quote), RateQuery{Interval: interval, Limit: limit})
	if err != nil {
		return PathRate{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	for _, s := range samples {
		if s.Price == nil {
			continue
		}
		rate := PathRate{Price: *s.Price}
		if s.Volume != nil {
			rate.Volume = *s.Volume
		}
		return rate, nil
	}
	return PathRate{}, nil
}
