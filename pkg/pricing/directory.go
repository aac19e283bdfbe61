package pricing

// SpotPairs derives the deduplicated set of tradable spot pairs from a
// catalog snapshot. Only instruments of class "spot" qualify. When the
// catalog lists the same pair on several venues the first occurrence
// wins, and order of first occurrence is preserved.
func SpotPairs(catalog []Instrument) []SpotPair {
	seen := make(map[string]struct{}, len(catalog))
	pairs := make([]SpotPair, 0, len(catalog))
	for _, inst := range catalog {
		if inst.Class != "spot" {
			continue
		}
		key := inst.BaseAsset + "-" + inst.QuoteAsset
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, SpotPair{BaseAsset: inst.BaseAsset, QuoteAsset: inst.QuoteAsset})
	}
	return pairs
}
