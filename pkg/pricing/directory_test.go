package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpotPairsFiltersToSpotClass(t *testing.T) {
	catalog := []Instrument{
		{BaseAsset: "btc", QuoteAsset: "usd", Class: "spot"},
		{BaseAsset: "btc", QuoteAsset: "usd", Class: "future"},
		{BaseAsset: "eth", QuoteAsset: "usd", Class: "perpetual-future"},
	}
	pairs := SpotPairs(catalog)
	require.Equal(t, []SpotPair{{BaseAsset: "btc", QuoteAsset: "usd"}}, pairs)
}

func TestSpotPairsDeduplicatesFirstSeen(t *testing.T) {
	// Same pair listed on two venues: the first occurrence wins and
	// catalog order is preserved.
	catalog := []Instrument{
		{BaseAsset: "eth", QuoteAsset: "btc", Class: "spot"},
		{BaseAsset: "btc", QuoteAsset: "usd", Class: "spot"},
		{BaseAsset: "eth", QuoteAsset: "btc", Class: "spot"},
		{BaseAsset: "eth", QuoteAsset: "usd", Class: "spot"},
	}
	pairs := SpotPairs(catalog)
	require.Equal(t, []SpotPair{
		{BaseAsset: "eth", QuoteAsset: "btc"},
		{BaseAsset: "btc", QuoteAsset: "usd"},
		{BaseAsset: "eth", QuoteAsset: "usd"},
	}, pairs)
}

func TestSpotPairsEmptyCatalog(t *testing.T) {
	require.Empty(t, SpotPairs(nil))
}
