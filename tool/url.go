package tool

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	CallbackRoutePrefix = "/api/share/v1"
	PeerInfoPath        = "/api/peer/v1/info"
	PeerBridgePath      = "/api/peer/v1/bridge"
)

// BuildLocalCallbackBase builds the callback base used when no public URL is configured.
func BuildLocalCallbackBase(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, CallbackRoutePrefix)
}

// BuildBridgeCallbackURL builds the redirect target for a bridge request.
func BuildBridgeCallbackURL(callbackBase, actionID string) string {
	return strings.TrimSuffix(callbackBase, "/") + "/bridge/" + url.PathEscape(actionID)
}

// BuildDialogCallbackURL builds the redirect target for an embedded web dialog.
func BuildDialogCallbackURL(callbackBase, dialogID string) string {
	return strings.TrimSuffix(callbackBase, "/") + "/dialog/" + url.PathEscape(dialogID)
}

// BuildPeerURL joins the peer app base URL with an API path.
func BuildPeerURL(peerBase, path string) (string, error) {
	u, err := url.Parse(peerBase)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse peer base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid peer base URL: %q", peerBase)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String(), nil
}

// BuildWebDialogURL builds <webBase>/dialog/<name>?<params> where params are
// flattened with FlattenParams.
func BuildWebDialogURL(webBase, name string, params map[string]string) (string, error) {
	u, err := url.Parse(webBase)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse web base URL")
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/dialog/" + url.PathEscape(name)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// IsNetworkURL reports whether rawURL is an absolute http(s) URL.
func IsNetworkURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// FileURL turns a local path into a file:// URL.
func FileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}
