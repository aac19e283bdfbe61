package pricing

// ComposeTwoHop combines the two legs of a base→proxy→quote path into
// one synthetic rate. The composed price is the product of the leg
// prices. The composed volume is the base leg's volume, expressed in
// base-leg units; a quote-side leg with zero volume zeroes the whole
// path, since the path is untrusted without liquidity into the quote
// asset. Callers should know the base-leg volume is an approximation of
// quote-denominated liquidity and skews VWAP weighting accordingly.
func ComposeTwoHop(baseToProxy, proxyToQuote PathRate) PathRate {
	volume := baseToProxy.Volume
	if proxyToQuote.Volume.IsZero() {
		volume = proxyToQuote.Volume
	}
	return PathRate{
		Price:  baseToProxy.Price.Mul(proxyToQuote.Price),
		Volume: volume,
	}
}
