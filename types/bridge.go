package types

import "time"

// ChannelKind tells the bridge how a request leaves the process.
type ChannelKind string

const (
	ChannelKindNative ChannelKind = "native" // handed to the peer app
	ChannelKindWeb    ChannelKind = "web"    // opened in a browser
)

// Surface is the host surface a dialog presents from. A nil *Surface means
// the host gave none.
type Surface struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// BridgeRequest is an outbound request to the peer app or the browser bridge.
type BridgeRequest struct {
	ActionID      string         `json:"actionId"`
	Kind          ChannelKind    `json:"kind"`
	Scheme        string         `json:"scheme"`
	MethodName    string         `json:"methodName"`
	MethodVersion string         `json:"methodVersion,omitempty"`
	Params        map[string]any `json:"params"`
	URL           string         `json:"url"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// BridgeResponse is what comes back for a BridgeRequest, either from the peer
// app or through the browser redirect.
type BridgeResponse struct {
	ActionID  string         `json:"actionId"`
	Params    map[string]any `json:"params,omitempty"`
	Cancelled bool           `json:"cancelled,omitempty"`
	ErrorCode int            `json:"errorCode,omitempty"`
	Error     error          `json:"-"`
}

// BridgeResponseBody is the JSON body a peer posts back to the callback server.
type BridgeResponseBody struct {
	ActionID          string         `json:"actionId"`
	CompletionGesture string         `json:"completionGesture,omitempty"`
	DidComplete       bool           `json:"didComplete,omitempty"`
	PostID            string         `json:"postId,omitempty"`
	Params            map[string]any `json:"params,omitempty"`
	ErrorCode         int            `json:"errorCode,omitempty"`
	ErrorMessage      string         `json:"errorMessage,omitempty"`
}

// PeerInfo is returned by the peer app info endpoint.
type PeerInfo struct {
	Alias    string   `json:"alias"`
	Version  string   `json:"version"`
	Schemes  []string `json:"schemes"`
	Features []string `json:"features,omitempty"`
}

// AccessToken is the session credential needed to stage media for web flows.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the token is present and not expired.
func (t *AccessToken) Valid() bool {
	if t == nil || t.Token == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || time.Now().Before(t.ExpiresAt)
}

// StagedPhotos is the staging endpoint response.
type StagedPhotos struct {
	URIs []string `json:"uris"`
}
