package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VWAP reduces a set of path rates into a single volume-weighted rate.
// Zero-volume entries contribute no weight and need no filtering. A zero
// aggregate volume means no constituent path had liquidity and surfaces
// as ErrDivisionByZero rather than a silent default.
func VWAP(entries []PathRate) (PathRate, error) {
	totalVolume := decimal.Zero
	weighted := decimal.Zero
	for _, e := range entries {
		totalVolume = totalVolume.Add(e.Volume)
		weighted = weighted.Add(e.Price.Mul(e.Volume))
	}
	if totalVolume.IsZero() {
		return PathRate{}, fmt.Errorf("%w: aggregate volume is zero", ErrDivisionByZero)
	}
	return PathRate{Price: weighted.Div(totalVolume), Volume: totalVolume}, nil
}
