package pricing

// ProxyAssets computes the ordered, size-bounded list of candidate
// intermediate assets for resolving base against quote. An asset
// qualifies when it is directly reachable from base and directly reaches
// into quote; the base asset itself never qualifies. When a direct
// (base, quote) pair exists the quote asset is placed first, so the
// direct path is always tried and tried first. The bound caps upstream
// fan-out: each non-direct proxy costs two rate fetches.
func ProxyAssets(base, quote string, pairs []SpotPair, maxProxyAssets int) []string {
	baseMatches := make([]string, 0, len(pairs))
	quoteMatches := make(map[string]struct{}, len(pairs))
	direct := false
	for _, p := range pairs {
		if p.BaseAsset == base && p.QuoteAsset != "" {
			baseMatches = append(baseMatches, p.QuoteAsset)
			if p.QuoteAsset == quote {
				direct = true
			}
		}
		if p.QuoteAsset == quote && p.BaseAsset != "" {
			quoteMatches[p.BaseAsset] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(baseMatches)+1)
	if direct {
		candidates = append(candidates, quote)
	}
	for _, asset := range baseMatches {
		if asset == base {
			continue
		}
		if _, ok := quoteMatches[asset]; ok {
			candidates = append(candidates, asset)
		}
	}

	proxies := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, asset := range candidates {
		if maxProxyAssets > 0 && len(proxies) >= maxProxyAssets {
			break
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		proxies = append(proxies, asset)
	}
	return proxies
}
