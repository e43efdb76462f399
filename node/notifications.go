package node

import "github.com/axon-labs/axonsim/types"

func (n *Node) notify(title, description string) {
	n.push(types.Notification{
		Title:       title,
		Description: description,
		Level:       types.NotifyInfo,
		Timestamp:   n.now(),
	})
}

func (n *Node) notifyError(title string, err error) {
	n.push(types.Notification{
		Title:       title,
		Description: err.Error(),
		Level:       types.NotifyError,
		Timestamp:   n.now(),
	})
}

// push appends to the bounded backlog (dropping the oldest entry when full)
// and offers the notification to the stream without ever blocking a state
// transition on a slow consumer.
func (n *Node) push(notification types.Notification) {
	n.notifyMu.Lock()
	if len(n.backlog) >= n.cfg.NotifyBacklog {
		n.backlog = n.backlog[1:]
	}
	n.backlog = append(n.backlog, notification)
	n.notifyMu.Unlock()

	select {
	case n.notifyCh <- notification:
	default:
	}
}

// Notifications returns the retained backlog, oldest first.
func (n *Node) Notifications() []types.Notification {
	n.notifyMu.Lock()
	defer n.notifyMu.Unlock()

	out := make([]types.Notification, len(n.backlog))
	copy(out, n.backlog)
	return out
}

// NotifyStream is consumed by the WebSocket manager.
func (n *Node) NotifyStream() <-chan types.Notification {
	return n.notifyCh
}
