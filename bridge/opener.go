package bridge

import (
	"context"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/transfer"
	"github.com/moyoez/sharekit/types"
)

// PendingTTL bounds how long an opened request waits for its callback.
const PendingTTL = 30 * time.Minute

// Launcher opens a web bridge URL for the user.
type Launcher interface {
	Launch(rawURL string, inApp bool, surface *types.Surface) error
}

// SendFunc delivers a native request to the peer app. It has the signature of
// transfer.SendBridgeRequest.
type SendFunc func(ctx context.Context, peerBaseURL string, req *types.BridgeRequest) (*types.BridgeResponseBody, error)

type pendingAction struct {
	once    sync.Once
	req     *types.BridgeRequest
	handler func(*types.BridgeResponse)
}

// Opener opens bridge requests and routes their responses back to the
// handler given to Open.
type Opener struct {
	PeerBaseURL string
	Launcher    Launcher
	Send        SendFunc

	pending *ttlworker.Cache[string, *pendingAction]
}

func NewOpener(peerBaseURL string, launcher Launcher) *Opener {
	return &Opener{
		PeerBaseURL: peerBaseURL,
		Launcher:    launcher,
		Send:        transfer.SendBridgeRequest,
		pending:     ttlworker.NewCache[string, *pendingAction](PendingTTL),
	}
}

// Open registers handler for req and starts it. Native requests go to the
// peer app in the background; web requests are launched through Launcher.
// A launch failure is returned and handler is dropped. Otherwise handler runs
// at most once.
func (o *Opener) Open(req *types.BridgeRequest, useInAppBrowser bool, surface *types.Surface, handler func(*types.BridgeResponse)) error {
	if req == nil {
		return errors.New("nil bridge request")
	}

	switch req.Kind {
	case types.ChannelKindNative:
		o.pending.Set(req.ActionID, &pendingAction{req: req, handler: handler})
		go o.sendNative(req)
	default:
		if o.Launcher == nil {
			return errors.New("no launcher configured")
		}
		o.pending.Set(req.ActionID, &pendingAction{req: req, handler: handler})
		if err := o.Launcher.Launch(req.URL, useInAppBrowser, surface); err != nil {
			o.pending.Delete(req.ActionID)
			return errors.Wrap(err, "failed to launch bridge URL")
		}
		tool.DefaultLogger.Infof("[Bridge] launched %s request %s", req.MethodName, req.ActionID)
	}
	return nil
}

func (o *Opener) sendNative(req *types.BridgeRequest) {
	send := o.Send
	if send == nil {
		send = transfer.SendBridgeRequest
	}
	ctx, cancel := context.WithTimeout(context.Background(), tool.DefaultTimeout)
	defer cancel()

	body, err := send(ctx, o.PeerBaseURL, req)
	switch {
	case err != nil:
		tool.DefaultLogger.Warnf("[Bridge] native request %s failed: %v", req.ActionID, err)
		o.Resolve(req.ActionID, &types.BridgeResponse{
			ActionID:  req.ActionID,
			ErrorCode: transfer.StatusCode(err),
			Error:     err,
		})
	case body != nil:
		o.Resolve(req.ActionID, ResponseFromBody(body))
	default:
		tool.DefaultLogger.Debugf("[Bridge] native request %s waiting for callback", req.ActionID)
	}
}

// Resolve delivers resp to the handler registered for actionID. It reports
// false when no request is waiting under that id.
func (o *Opener) Resolve(actionID string, resp *types.BridgeResponse) bool {
	action := o.pending.Get(actionID)
	if action == nil {
		tool.DefaultLogger.Debugf("[Bridge] no pending request for action %s", actionID)
		return false
	}
	o.pending.Delete(actionID)
	if resp == nil {
		resp = &types.BridgeResponse{}
	}
	resp.ActionID = actionID

	delivered := false
	action.once.Do(func() {
		delivered = true
		if action.handler != nil {
			action.handler(resp)
		}
	})
	return delivered
}

// Lookup returns the pending request for actionID.
func (o *Opener) Lookup(actionID string) (*types.BridgeRequest, bool) {
	action := o.pending.Get(actionID)
	if action == nil {
		return nil, false
	}
	return action.req, true
}
