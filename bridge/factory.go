package bridge

import (
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// Factory builds bridge requests with their launch URLs.
type Factory struct {
	AppID        string
	Version      string
	CallbackBase string
	// WebBaseURL replaces "<scheme>://" for web requests.
	WebBaseURL string
}

func NewFactory(cfg *types.AppConfig) *Factory {
	return &Factory{
		AppID:        cfg.AppID,
		Version:      cfg.BridgeVersion,
		CallbackBase: cfg.CallbackPublicURL,
		WebBaseURL:   cfg.WebBaseURL,
	}
}

// Build assigns a fresh action id to the request and encodes it as
// <scheme>://dialog/<method>?bridge_args=..&method_args=..&version=..&redirect_uri=..
func (f *Factory) Build(kind types.ChannelKind, scheme, methodName string, params map[string]any) (*types.BridgeRequest, error) {
	if methodName == "" {
		return nil, errors.New("bridge request needs a method name")
	}
	if kind == types.ChannelKindNative && scheme == "" {
		return nil, errors.New("native bridge request needs a scheme")
	}
	if params == nil {
		params = map[string]any{}
	}

	req := &types.BridgeRequest{
		ActionID:      tool.GenerateRandomUUID(),
		Kind:          kind,
		Scheme:        scheme,
		MethodName:    methodName,
		MethodVersion: f.Version,
		Params:        params,
		CreatedAt:     time.Now(),
	}

	bridgeArgs := map[string]any{"action_id": req.ActionID}
	if f.AppID != "" {
		bridgeArgs["app_id"] = f.AppID
	}
	encodedBridgeArgs, err := sonic.MarshalString(bridgeArgs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode bridge args")
	}
	encodedMethodArgs, err := sonic.MarshalString(params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode method args")
	}

	base, err := f.dialogURL(kind, scheme, methodName)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("bridge_args", encodedBridgeArgs)
	q.Set("method_args", encodedMethodArgs)
	if f.Version != "" {
		q.Set("version", f.Version)
	}
	if f.CallbackBase != "" {
		q.Set("redirect_uri", tool.BuildBridgeCallbackURL(f.CallbackBase, req.ActionID))
	}
	base.RawQuery = q.Encode()
	req.URL = base.String()
	return req, nil
}

// dialogURL is <scheme>://dialog/<method> for native requests and
// <webBase>/dialog/<method> for web ones.
func (f *Factory) dialogURL(kind types.ChannelKind, scheme, methodName string) (*url.URL, error) {
	if kind == types.ChannelKindWeb && f.WebBaseURL != "" {
		u, err := url.Parse(f.WebBaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse web base URL")
		}
		u.Path = strings.TrimSuffix(u.Path, "/") + "/dialog/" + methodName
		return u, nil
	}
	if scheme == "" {
		return nil, errors.New("bridge request needs a scheme or a web base URL")
	}
	return &url.URL{Scheme: scheme, Host: "dialog", Path: "/" + methodName}, nil
}
