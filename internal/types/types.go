package types

import "github.com/shopspring/decimal"

func init() {
	// Chainlink nodes expect the result as a bare JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// JobData is the data section of an inbound job request. Base and quote
// each accept three historical field aliases.
type JobData struct {
	Base string `json:"base,optional"`
	From string `json:"from,optional"`
	Coin string `json:"coin,optional"`

	Quote  string `json:"quote,optional"`
	To     string `json:"to,optional"`
	Market string `json:"market,optional"`

	Method    string `json:"method,optional"`
	DoInverse bool   `json:"do_inverse,optional"`
	Limit     int    `json:"limit,optional"`
}

// JobRequest is the Chainlink-style job envelope.
type JobRequest struct {
	ID   string  `json:"id,optional"`
	Data JobData `json:"data"`
}

// JobResult wraps the resolved rate.
type JobResult struct {
	Result decimal.Decimal `json:"result"`
}

// JobResponse is the response envelope for both success and failure.
type JobResponse struct {
	JobRunID string     `json:"jobRunID"`
	Status   string     `json:"status"`
	Error    string     `json:"error,omitempty"`
	Data     *JobResult `json:"data,omitempty"`
}
