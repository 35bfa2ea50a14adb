package models

import (
	"sync"

	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/surface"
	"github.com/moyoez/sharekit/types"
)

// BridgeResolver routes bridge callbacks to the request that is waiting.
type BridgeResolver interface {
	Resolve(actionID string, resp *types.BridgeResponse) bool
	Lookup(actionID string) (*types.BridgeRequest, bool)
}

// WebDialogResolver resolves open web dialogs.
type WebDialogResolver interface {
	Complete(id string, results map[string]any) bool
	Fail(id string, err error) bool
	Cancel(id string) bool
}

// SheetResolver resolves presented compose sheets.
type SheetResolver interface {
	Lookup(id string) (surface.SheetView, bool)
	Finish(id string, result share.SheetResult) bool
}

var (
	backendsMu sync.RWMutex
	bridge     BridgeResolver
	webDialogs WebDialogResolver
	sheets     SheetResolver
)

// SetShareBackends installs what the callback routes resolve against.
func SetShareBackends(b BridgeResolver, w WebDialogResolver, s SheetResolver) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	bridge, webDialogs, sheets = b, w, s
}

func GetBridge() BridgeResolver {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return bridge
}

func GetWebDialogs() WebDialogResolver {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return webDialogs
}

func GetSheets() SheetResolver {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return sheets
}
