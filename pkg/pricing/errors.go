package pricing

import "errors"

// Error kinds surfaced by the resolver. Callers distinguish them with
// errors.Is; the adapter layer maps each kind to a response status.
var (
	// ErrInvalidInput marks malformed caller-supplied asset symbols.
	ErrInvalidInput = errors.New("pricing: invalid input")
	// ErrNoRateFound marks a required direct rate with no usable sample.
	ErrNoRateFound = errors.New("pricing: no rate found")
	// ErrDivisionByZero marks a zero aggregate volume or a zero price
	// under inversion.
	ErrDivisionByZero = errors.New("pricing: division by zero")
	// ErrUpstream marks a failed market data source call.
	ErrUpstream = errors.New("pricing: upstream request failed")
)
