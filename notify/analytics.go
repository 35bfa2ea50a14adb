package notify

import (
	"fmt"
	"maps"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// Broadcaster fans notifications out to websocket clients.
type Broadcaster interface {
	Broadcast(notification *types.Notification)
}

// Analytics turns dialog events into notifications and metrics.
type Analytics struct {
	SocketPath string
	Hub        Broadcaster
}

func NewAnalytics(socketPath string, hub Broadcaster) *Analytics {
	return &Analytics{SocketPath: socketPath, Hub: hub}
}

// LogEvent records metrics and broadcasts synchronously. The socket
// delivery runs in the background so callers never wait on the listener.
func (a *Analytics) LogEvent(name string, params map[string]any) {
	record(name, params)

	notification := &types.Notification{
		Type:    name,
		Title:   eventTitle(name),
		Message: eventMessage(name, params),
		Data:    maps.Clone(params),
	}
	if a.Hub != nil {
		a.Hub.Broadcast(notification)
	}
	// the socket round trip can take up to UnixSocketTimeout per step
	go func() {
		if err := SendNotification(notification, a.SocketPath); err != nil {
			tool.DefaultLogger.Debugf("[Notify] %s not delivered to socket: %v", name, err)
		}
	}()
}

func record(name string, params map[string]any) {
	switch name {
	case types.NotifyTypeShareShow:
		DialogShows.WithLabelValues(param(params, "mode"), param(params, "content_type")).Inc()
	case types.NotifyTypeShareResult:
		DialogResults.WithLabelValues(param(params, "outcome")).Inc()
	}
}

func eventTitle(name string) string {
	switch name {
	case types.NotifyTypeShareShow:
		return "Share Started"
	case types.NotifyTypeShareResult:
		return "Share Finished"
	default:
		return "Share Event"
	}
}

func eventMessage(name string, params map[string]any) string {
	switch name {
	case types.NotifyTypeShareShow:
		return fmt.Sprintf("Sharing %s via %s", param(params, "content_type"), param(params, "mode"))
	case types.NotifyTypeShareResult:
		if msg := param(params, "error_message"); msg != "" {
			return fmt.Sprintf("Share %s: %s", param(params, "outcome"), msg)
		}
		return "Share " + param(params, "outcome")
	default:
		return name
	}
}

func param(params map[string]any, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
