// Package runs persists optimization run history.
package runs

import "time"

// Run is a stored record of one optimization call. Payload carries the
// msgpack-encoded weights and request summary; the scalar columns exist so
// runs can be listed and compared without decoding.
type Run struct {
	ID             string    `json:"id"`
	Strategy       string    `json:"strategy"`
	NumAssets      int       `json:"num_assets"`
	ExpectedReturn float64   `json:"expected_return"`
	Volatility     float64   `json:"volatility"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	Payload        []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
