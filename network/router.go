// Package network exposes the node over HTTP: a JSON REST surface for the
// dashboard plus a WebSocket stream for notifications. Handlers never touch
// the node directly; they publish typed messages on the bus and wait for the
// response.
package network

import (
	"fmt"
	"time"

	"github.com/axon-labs/axonsim/types"
)

// responseTimeout bounds how long a handler waits for the node.
const responseTimeout = 10 * time.Second

type Router struct {
	bus *types.MessageBus
	ws  *WebSocketManager
}

func NewRouter(bus *types.MessageBus, notifications <-chan types.Notification) *Router {
	return &Router{
		bus: bus,
		ws:  NewWebSocketManager(notifications),
	}
}

// ask publishes a message on the bus and waits for the node's response.
func (router *Router) ask(msgType types.MessageType, data interface{}) (interface{}, error) {
	responseCh := make(chan types.Response, 1)
	router.bus.Publish(types.Message{
		Type:       msgType,
		Data:       data,
		ResponseCh: responseCh,
	})

	select {
	case response := <-responseCh:
		return response.Data, response.Error
	case <-time.After(responseTimeout):
		return nil, fmt.Errorf("timed out waiting for node response to %s", msgType)
	}
}
