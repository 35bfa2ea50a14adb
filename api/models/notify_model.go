package models

import (
	"sync"

	"github.com/moyoez/sharekit/api/notifyhub"
)

var (
	notifyOptMu sync.RWMutex
	notifyHub   *notifyhub.Hub
)

// SetNotifyHub sets the hub for WebSocket notification broadcast.
func SetNotifyHub(h *notifyhub.Hub) {
	notifyOptMu.Lock()
	defer notifyOptMu.Unlock()
	notifyHub = h
}

// GetNotifyHub returns the notify WebSocket hub, or nil if not set.
func GetNotifyHub() *notifyhub.Hub {
	notifyOptMu.RLock()
	defer notifyOptMu.RUnlock()
	return notifyHub
}

// NotifyWSEnabled reports whether websocket clients can subscribe.
func NotifyWSEnabled() bool {
	return GetNotifyHub() != nil
}
