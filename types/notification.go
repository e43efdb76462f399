package types

const (
	NotifyInfo  = "info"
	NotifyError = "error"
)

// Notification is the transient feedback surfaced to the presentation layer
// after each operation. The node keeps a bounded backlog and streams new
// entries over the WebSocket endpoint.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level"`
	Timestamp   int64  `json:"timestamp"`
}
