package logic

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ratefeed-api/internal/config"
	"ratefeed-api/internal/svc"
	"ratefeed-api/internal/types"
	"ratefeed-api/pkg/pricing"
)

type stubSource struct {
	instruments []pricing.Instrument
	rates       map[string][]pricing.RateSample
	err         error
}

func (s *stubSource) ListInstruments(ctx context.Context) ([]pricing.Instrument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.instruments, nil
}

func (s *stubSource) FetchRates(ctx context.Context, endpoint string, q pricing.RateQuery) ([]pricing.RateSample, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rates[endpoint], nil
}

func newTestContext(source pricing.MarketDataSource) *svc.ServiceContext {
	cfg := config.Config{}
	cfg.Pricing = config.PricingConf{
		MaxProxyAssets: 5,
		SampleLimit:    600,
		Interval:       "1m",
		RoundScale:     0,
	}
	return &svc.ServiceContext{
		Config: cfg,
		Source: source,
		Resolver: pricing.NewResolver(source,
			pricing.WithMaxProxyAssets(cfg.Pricing.MaxProxyAssets),
			pricing.WithSampleLimit(cfg.Pricing.SampleLimit),
			pricing.WithRoundScale(cfg.Pricing.RoundScale),
		),
	}
}

func directSample(price, volume string) pricing.RateSample {
	p := decimal.RequireFromString(price)
	v := decimal.RequireFromString(volume)
	return pricing.RateSample{Timestamp: 123, Price: &p, Volume: &v}
}

func TestPriceSuccess(t *testing.T) {
	source := &stubSource{
		rates: map[string][]pricing.RateSample{
			pricing.SpotDirectEndpoint("btc", "usd"): {directSample("42000.4", "3")},
		},
	}
	l := NewPriceLogic(context.Background(), newTestContext(source))

	resp, status := l.Price(&types.JobRequest{
		ID:   "job-1",
		Data: types.JobData{Base: "btc", Quote: "usd"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "job-1", resp.JobRunID)
	require.Equal(t, "200", resp.Status)
	require.NotNil(t, resp.Data)
	require.Equal(t, "42000", resp.Data.Result.String())
}

func TestPriceAcceptsFieldAliases(t *testing.T) {
	source := &stubSource{
		rates: map[string][]pricing.RateSample{
			pricing.SpotDirectEndpoint("eth", "eur"): {directSample("2000", "1")},
		},
	}
	l := NewPriceLogic(context.Background(), newTestContext(source))

	resp, status := l.Price(&types.JobRequest{
		ID:   "job-2",
		Data: types.JobData{From: "ETH", To: "EUR"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2000", resp.Data.Result.String())

	resp, status = l.Price(&types.JobRequest{
		ID:   "job-3",
		Data: types.JobData{Coin: "eth", Market: "eur"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2000", resp.Data.Result.String())
}

func TestPriceVWAPMethod(t *testing.T) {
	source := &stubSource{
		instruments: []pricing.Instrument{
			{BaseAsset: "btc", QuoteAsset: "usd", Class: "spot"},
			{BaseAsset: "eth", QuoteAsset: "btc", Class: "spot"},
			{BaseAsset: "eth", QuoteAsset: "usd", Class: "spot"},
		},
		rates: map[string][]pricing.RateSample{
			pricing.SpotDirectEndpoint("btc", "usd"): {directSample("2", "3")},
			pricing.SpotDirectEndpoint("eth", "btc"): {directSample("10", "30")},
			pricing.SpotDirectEndpoint("eth", "usd"): {directSample("10", "10")},
		},
	}
	l := NewPriceLogic(context.Background(), newTestContext(source))

	resp, status := l.Price(&types.JobRequest{
		ID:   "job-4",
		Data: types.JobData{Base: "eth", Quote: "usd", Method: "vwap"},
	})
	require.Equal(t, http.StatusOK, status)
	// VWAP 17.5 rounds half-to-even to 18 at the boundary.
	require.Equal(t, "18", resp.Data.Result.String())
}

func TestPriceLegacyUsdtEthInverts(t *testing.T) {
	source := &stubSource{
		rates: map[string][]pricing.RateSample{
			pricing.SpotDirectEndpoint("usdt", "eth"): {directSample("0.0004", "3")},
		},
	}
	l := NewPriceLogic(context.Background(), newTestContext(source))

	resp, status := l.Price(&types.JobRequest{
		ID:   "job-5",
		Data: types.JobData{Base: "usdt", Quote: "eth"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2500", resp.Data.Result.String())
}

func TestPriceGeneratesJobRunID(t *testing.T) {
	source := &stubSource{
		rates: map[string][]pricing.RateSample{
			pricing.SpotDirectEndpoint("btc", "usd"): {directSample("2", "3")},
		},
	}
	l := NewPriceLogic(context.Background(), newTestContext(source))

	resp, status := l.Price(&types.JobRequest{
		Data: types.JobData{Base: "btc", Quote: "usd"},
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp.JobRunID)
}

func TestPriceErrorStatuses(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		l := NewPriceLogic(context.Background(), newTestContext(&stubSource{}))
		resp, status := l.Price(&types.JobRequest{
			ID:   "job-6",
			Data: types.JobData{Base: "b!tc", Quote: "usd"},
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "errored", resp.Status)
		require.NotEmpty(t, resp.Error)
		require.Nil(t, resp.Data)
	})

	t.Run("no rate found", func(t *testing.T) {
		l := NewPriceLogic(context.Background(), newTestContext(&stubSource{}))
		resp, status := l.Price(&types.JobRequest{
			ID:   "job-7",
			Data: types.JobData{Base: "btc", Quote: "usd"},
		})
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "errored", resp.Status)
	})

	t.Run("upstream failure", func(t *testing.T) {
		l := NewPriceLogic(context.Background(), newTestContext(&stubSource{err: errors.New("boom")}))
		resp, status := l.Price(&types.JobRequest{
			ID:   "job-8",
			Data: types.JobData{Base: "btc", Quote: "usd"},
		})
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, "errored", resp.Status)
	})
}
