package types

// UsageEvent is the immutable record of one simulated fee-generating model
// call. The usage log is append-only.
type UsageEvent struct {
	ID           string  `json:"id"`
	Caller       string  `json:"caller"`
	Fee          float64 `json:"fee"` // USDX
	ModelVersion string  `json:"modelVersion"`
	Timestamp    int64   `json:"timestamp"` // unix seconds
}
