package share

import (
	"context"

	"github.com/spf13/afero"

	"github.com/moyoez/sharekit/types"
)

// Probe answers read-only capability questions about the host.
type Probe interface {
	IsPeerAppInstalled() bool
	CanOpenURL(scheme string) bool
}

// BridgeFactory builds outbound bridge requests.
type BridgeFactory interface {
	Build(kind types.ChannelKind, scheme, methodName string, params map[string]any) (*types.BridgeRequest, error)
}

// BridgeOpener sends a built request out of the process. Open returns an error
// when the request could not leave the process, and handler is then never
// called. Otherwise handler is called exactly once with the response,
// including asynchronous transport failures.
type BridgeOpener interface {
	Open(req *types.BridgeRequest, useInAppBrowser bool, surface *types.Surface, handler func(*types.BridgeResponse)) error
}

// WebDialogDelegate receives the result of an embedded web dialog.
type WebDialogDelegate interface {
	WebDialogDidComplete(handle WebDialogHandle, results map[string]any)
	WebDialogDidFail(handle WebDialogHandle, err error)
	WebDialogDidCancel(handle WebDialogHandle)
}

// WebDialogHandle identifies a shown web dialog.
type WebDialogHandle interface {
	DialogID() string
}

// WebDialogSurface shows embedded web dialogs.
type WebDialogSurface interface {
	CreateAndShow(name string, params map[string]any, delegate WebDialogDelegate) (WebDialogHandle, error)
}

// SheetResult is the only signal a compose sheet reports.
type SheetResult int

const (
	SheetCancelled SheetResult = iota
	SheetDone
)

// ComposeSheet is a system compose sheet being filled before presentation.
type ComposeSheet interface {
	SetInitialText(text string) bool
	AddImage(image []byte) bool
	AddURL(url string) bool
	AddVideoURL(url string) bool
	SetCompletionHandler(handler func(SheetResult))
	Present(surface *types.Surface) error
}

// SheetFactory creates compose sheets.
type SheetFactory interface {
	Available() bool
	MakeController() (ComposeSheet, error)
}

// RemoteConfig exposes the server-controlled dialog flags.
type RemoteConfig interface {
	DefaultShareModeIsComposeSheet() bool
	ShouldPreferNativeDialog() bool
	ShouldUseInAppBrowser() bool
}

// TokenStore exposes the current session credential.
type TokenStore interface {
	CurrentAccessToken() *types.AccessToken
}

// PhotoStager uploads in-memory images so a browser flow can reference them.
// done is called once, possibly on another goroutine or before Stage returns.
type PhotoStager interface {
	Stage(ctx context.Context, images [][]byte, token *types.AccessToken, done func(uris []string, err error))
}

// EventLogger records dialog analytics events.
type EventLogger interface {
	LogEvent(name string, params map[string]any)
}

// Delegate receives the outcome of Show.
type Delegate interface {
	OnComplete(d *Dialog, results map[string]any)
	OnFail(d *Dialog, err error)
	OnCancel(d *Dialog)
}

// Deps carries every collaborator a Dialog talks to. Nil collaborators make the
// channels that need them unavailable.
type Deps struct {
	Probe         Probe
	BridgeFactory BridgeFactory
	BridgeOpener  BridgeOpener
	WebDialogs    WebDialogSurface
	Sheets        SheetFactory
	RemoteConfig  RemoteConfig
	Tokens        TokenStore
	Stager        PhotoStager
	Events        EventLogger

	// Fs and TempDir are where raw video bytes get staged. Defaults to the OS
	// filesystem and os.TempDir().
	Fs      afero.Fs
	TempDir string

	AppID                string
	PeerScheme           string
	ShareExtensionScheme string
}
