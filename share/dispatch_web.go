package share

import (
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// showWeb opens the share page in an embedded web dialog.
func (d *Dialog) showWeb(content types.ShareContent) error {
	if err := d.validateForBrowser(content, true); err != nil {
		return err
	}
	if d.deps.WebDialogs == nil {
		return errors.Wrap(ErrNotConfigured, "web share needs a web dialog surface")
	}
	methodName, params, err := d.webShareParams(content)
	if err != nil {
		return err
	}
	return d.showWebDialog(methodName, params)
}

// showFeedWeb opens the feed dialog for a link in an embedded web dialog.
func (d *Dialog) showFeedWeb(content types.ShareContent) error {
	if err := d.validateForFeed(content); err != nil {
		return err
	}
	if d.deps.WebDialogs == nil {
		return errors.Wrap(ErrNotConfigured, "feed share needs a web dialog surface")
	}
	return d.showWebDialog(feedMethodName, feedParams(content.(*types.LinkContent)))
}

func (d *Dialog) showWebDialog(name string, params map[string]any) error {
	delegate := &webDialogDelegate{dialog: d, attempt: d.currentAttempt()}

	d.mu.Lock()
	d.webDelegate = delegate
	d.mu.Unlock()

	handle, err := d.deps.WebDialogs.CreateAndShow(name, params, delegate)
	if err != nil {
		d.mu.Lock()
		if d.webDelegate == delegate {
			d.webDelegate = nil
		}
		d.mu.Unlock()
		return errors.Wrapf(err, "failed to show %s web dialog", name)
	}
	if handle != nil {
		tool.DefaultLogger.Debugf("[Share] dialog %s opened web dialog %s", d.id, handle.DialogID())
	}
	return nil
}

// webDialogFinished delivers a web dialog result unless a newer web dialog
// replaced the one it came from.
func (d *Dialog) webDialogFinished(delegate *webDialogDelegate, outcome types.Outcome) {
	d.mu.Lock()
	if d.webDelegate != delegate {
		d.mu.Unlock()
		tool.DefaultLogger.Debugf("[Share] dialog %s ignoring result of a stale web dialog", d.id)
		return
	}
	d.webDelegate = nil
	d.mu.Unlock()
	d.finish(delegate.attempt, outcome)
}

type webDialogDelegate struct {
	dialog  *Dialog
	attempt uint64
}

func (w *webDialogDelegate) WebDialogDidComplete(_ WebDialogHandle, results map[string]any) {
	w.dialog.webDialogFinished(w, normalizeWebDialogResults(results))
}

func (w *webDialogDelegate) WebDialogDidFail(_ WebDialogHandle, err error) {
	w.dialog.webDialogFinished(w, types.Failed(&RemoteError{Message: "web dialog failed", Err: err}))
}

func (w *webDialogDelegate) WebDialogDidCancel(_ WebDialogHandle) {
	w.dialog.webDialogFinished(w, types.Cancelled())
}

var _ WebDialogDelegate = (*webDialogDelegate)(nil)
