package share

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/types"
)

// showBrowser opens the share page in a browser through the bridge. Photo
// content with in-memory images is staged first, so the request is only
// opened once staging comes back.
func (d *Dialog) showBrowser(content types.ShareContent) error {
	if err := d.validateForBrowser(content, false); err != nil {
		return err
	}
	if d.deps.BridgeFactory == nil || d.deps.BridgeOpener == nil {
		return errors.Wrap(ErrNotConfigured, "browser share needs a bridge")
	}
	attempt := d.currentAttempt()

	if photos, ok := content.(*types.PhotoContent); ok && hasInMemoryImage(photos.Photos) {
		if d.deps.Stager == nil {
			return errors.Wrap(ErrNotConfigured, "browser photo share needs a photo stager")
		}
		return d.stageAndOpen(attempt, photos)
	}

	methodName, params, err := d.webShareParams(content)
	if err != nil {
		return err
	}
	return d.openWebBridge(attempt, methodName, params)
}

// showFeedBrowser opens the feed dialog for a link through the bridge.
func (d *Dialog) showFeedBrowser(content types.ShareContent) error {
	if err := d.validateForFeed(content); err != nil {
		return err
	}
	if d.deps.BridgeFactory == nil || d.deps.BridgeOpener == nil {
		return errors.Wrap(ErrNotConfigured, "feed share needs a bridge")
	}
	return d.openWebBridge(d.currentAttempt(), feedMethodName, feedParams(content.(*types.LinkContent)))
}

func (d *Dialog) openWebBridge(attempt uint64, methodName string, params map[string]any) error {
	req, err := d.deps.BridgeFactory.Build(types.ChannelKindWeb, webBridgeScheme, methodName, params)
	if err != nil {
		return errors.Wrap(ErrRequestConstructionFailed, err.Error())
	}
	if req == nil {
		return errors.WithStack(ErrRequestConstructionFailed)
	}
	err = d.deps.BridgeOpener.Open(req, d.remote().ShouldUseInAppBrowser(), d.Surface, func(resp *types.BridgeResponse) {
		d.finish(attempt, normalizeBridgeResponse(resp))
	})
	if err != nil {
		return errors.Wrapf(err, "failed to open %s bridge request", methodName)
	}
	return nil
}

// stageAndOpen uploads the in-memory photos and opens the bridge once the
// staged URIs are back. When the stager answers before Stage returns, the
// result is handled here and a failure is returned to the caller.
func (d *Dialog) stageAndOpen(attempt uint64, photos *types.PhotoContent) error {
	var (
		mu       sync.Mutex
		returned bool
		early    bool
		earlyURI []string
		earlyErr error
	)
	d.deps.Stager.Stage(context.Background(), contentImages(photos), d.accessToken(), func(uris []string, err error) {
		mu.Lock()
		if !returned {
			early, earlyURI, earlyErr = true, uris, err
			mu.Unlock()
			return
		}
		mu.Unlock()

		if err != nil {
			d.finish(attempt, types.Failed(&RemoteError{Message: "failed to stage photos", Err: err}))
			return
		}
		if err := d.openWebBridge(attempt, shareMethodName, d.webPhotoParams(photos, uris)); err != nil {
			d.finish(attempt, types.Failed(err))
		}
	})

	mu.Lock()
	returned = true
	staged := early
	mu.Unlock()
	if !staged {
		return nil
	}
	if earlyErr != nil {
		return &RemoteError{Message: "failed to stage photos", Err: earlyErr}
	}
	return d.openWebBridge(attempt, shareMethodName, d.webPhotoParams(photos, earlyURI))
}
