package share

import (
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/types"
)

// showNative hands the content to the installed peer app over the bridge.
func (d *Dialog) showNative(content types.ShareContent) error {
	if !d.canShowNative() {
		return errors.Wrap(ErrChannelUnavailable, "peer app is not installed")
	}
	if err := d.validateForNative(content); err != nil {
		return err
	}
	if d.deps.BridgeFactory == nil || d.deps.BridgeOpener == nil {
		return errors.Wrap(ErrNotConfigured, "native share needs a bridge")
	}

	methodName := shareMethodName
	if _, ok := content.(*types.CameraEffectContent); ok {
		methodName = cameraMethodName
	}
	params, err := d.nativeParams(content)
	if err != nil {
		return err
	}
	req, err := d.deps.BridgeFactory.Build(types.ChannelKindNative, d.deps.PeerScheme, methodName, params)
	if err != nil {
		return errors.Wrap(ErrRequestConstructionFailed, err.Error())
	}
	if req == nil {
		return errors.WithStack(ErrRequestConstructionFailed)
	}

	attempt := d.currentAttempt()
	err = d.deps.BridgeOpener.Open(req, d.remote().ShouldUseInAppBrowser(), d.Surface, func(resp *types.BridgeResponse) {
		d.handleNativeResponse(attempt, content, resp)
	})
	if err != nil {
		return errors.Wrap(err, "failed to open native share request")
	}
	return nil
}

func (d *Dialog) handleNativeResponse(attempt uint64, content types.ShareContent, resp *types.BridgeResponse) {
	outcome := normalizeBridgeResponse(resp)
	if outcome.Kind == types.OutcomeFailed && IsAppVersionUnsupported(outcome.Err) {
		if d.currentAttempt() == attempt && d.retryAfterAppVersionUnsupported(content) {
			return
		}
	}
	d.finish(attempt, outcome)
}
