package share

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// Dialog picks a delivery channel for a piece of content, hands the content to
// it and reports a single normalized outcome to its Delegate.
//
// Mode, Content, Surface and StrictValidation may be changed between calls to
// Show. Content is read once per Show.
type Dialog struct {
	Surface          *types.Surface
	Content          types.ShareContent
	Mode             types.Mode
	StrictValidation bool

	delegate Delegate
	deps     Deps
	id       string
	tracker  *tracker

	mu           sync.Mutex
	attempt      uint64
	finished     bool
	showing      bool
	held         *types.Outcome
	shownMode    types.Mode
	webDelegate  *webDialogDelegate
	stagedVideos map[*types.ShareVideo]string
}

// New creates a dialog presenting from surface. The dialog's staged temporary
// files are removed by Close, or when the dialog is garbage collected.
func New(surface *types.Surface, content types.ShareContent, delegate Delegate, deps Deps) *Dialog {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.TempDir == "" {
		deps.TempDir = os.TempDir()
	}
	d := &Dialog{
		Surface:      surface,
		Content:      content,
		Mode:         types.ModeAutomatic,
		delegate:     delegate,
		deps:         deps,
		id:           tool.GenerateRandomUUID(),
		tracker:      newTracker(deps.Fs, deps.TempDir),
		stagedVideos: make(map[*types.ShareVideo]string),
	}
	runtime.AddCleanup(d, func(t *tracker) { t.cleanup() }, d.tracker)
	return d
}

func (d *Dialog) ID() string {
	return d.id
}

// ShownMode is the channel the last successful Show initiated.
func (d *Dialog) ShownMode() types.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shownMode
}

// StagedFiles lists the temporary files staged so far.
func (d *Dialog) StagedFiles() []string {
	return d.tracker.list()
}

// CanShow reports whether Show could start with the current mode and content.
// Without content it only reports channel availability.
func (d *Dialog) CanShow() bool {
	if d.Content == nil {
		switch d.Mode {
		case types.ModeNative:
			return d.canShowNative()
		case types.ModeShareSheet:
			return d.canShowShareSheet()
		default:
			return true
		}
	}
	return d.Validate() == nil
}

// Validate checks the current content against the current mode.
func (d *Dialog) Validate() error {
	return d.validate(d.Content, d.Mode)
}

// Show validates and dispatches the content. It returns true once a channel
// has been initiated; the outcome is reported later through the Delegate.
// When nothing could be initiated the Delegate's OnFail is called and Show
// returns false. An outcome that arrives while Show is still running is
// delivered after the show event.
func (d *Dialog) Show() bool {
	content := d.Content
	mode := d.Mode

	d.mu.Lock()
	d.attempt++
	d.finished = false
	d.showing = true
	d.held = nil
	d.webDelegate = nil
	attempt := d.attempt
	d.mu.Unlock()

	registerTransient(d)

	err := d.validate(content, mode)
	if err == nil {
		err = d.dispatch(mode, content)
	}

	d.mu.Lock()
	d.showing = false
	held := d.held
	d.held = nil
	d.mu.Unlock()

	if err != nil {
		tool.DefaultLogger.Warnf("[Share] dialog %s could not show %s content in %s mode: %v", d.id, kindOf(content), mode, err)
		if held != nil {
			d.deliver(*held)
		} else {
			d.finish(attempt, types.Failed(err))
		}
		return false
	}
	d.logShow(content)
	if held != nil {
		d.deliver(*held)
	}
	return true
}

// Close removes every temporary file staged by this dialog. Removal errors are
// logged and swallowed.
func (d *Dialog) Close() {
	d.tracker.cleanup()
	unregisterTransient(d)
}

func (d *Dialog) dispatch(mode types.Mode, content types.ShareContent) error {
	if mode == types.ModeAutomatic {
		return d.showAutomatic(content)
	}
	if err := d.showWithMode(mode, content); err != nil {
		return err
	}
	d.setShownMode(mode)
	return nil
}

func (d *Dialog) showWithMode(mode types.Mode, content types.ShareContent) error {
	switch mode {
	case types.ModeAutomatic:
		return d.showAutomatic(content)
	case types.ModeNative:
		return d.showNative(content)
	case types.ModeShareSheet:
		return d.showShareSheet(content)
	case types.ModeBrowser:
		return d.showBrowser(content)
	case types.ModeWeb:
		return d.showWeb(content)
	case types.ModeFeedBrowser:
		return d.showFeedBrowser(content)
	case types.ModeFeedWeb:
		return d.showFeedWeb(content)
	default:
		return errors.Errorf("unknown share mode %d", mode)
	}
}

func (d *Dialog) currentAttempt() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempt
}

func (d *Dialog) setShownMode(mode types.Mode) {
	d.mu.Lock()
	d.shownMode = mode
	d.mu.Unlock()
}

// finish delivers outcome for attempt. Anything arriving for an older attempt,
// or after the attempt already finished, is dropped. An outcome arriving while
// Show is still running is held until Show has logged the show event.
func (d *Dialog) finish(attempt uint64, outcome types.Outcome) {
	d.mu.Lock()
	if attempt != d.attempt || d.finished {
		d.mu.Unlock()
		tool.DefaultLogger.Debugf("[Share] dialog %s dropped %s outcome for attempt %d", d.id, outcome.Kind, attempt)
		return
	}
	d.finished = true
	if d.showing {
		d.held = &outcome
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	d.deliver(outcome)
}

func (d *Dialog) deliver(outcome types.Outcome) {
	d.logResult(outcome)
	unregisterTransient(d)

	if d.delegate == nil {
		return
	}
	switch outcome.Kind {
	case types.OutcomeCompleted:
		d.delegate.OnComplete(d, outcome.Results)
	case types.OutcomeCancelled:
		d.delegate.OnCancel(d)
	default:
		d.delegate.OnFail(d, outcome.Err)
	}
}

func (d *Dialog) logShow(content types.ShareContent) {
	tool.DefaultLogger.Infof("[Share] dialog %s initiated %s share via %s", d.id, kindOf(content), d.ShownMode())
	if d.deps.Events == nil {
		return
	}
	d.deps.Events.LogEvent(types.NotifyTypeShareShow, map[string]any{
		"dialog_id":    d.id,
		"mode":         d.ShownMode().String(),
		"content_type": kindOf(content).String(),
	})
}

func (d *Dialog) logResult(outcome types.Outcome) {
	if outcome.Kind == types.OutcomeFailed {
		tool.DefaultLogger.Infof("[Share] dialog %s finished: %s (%v)", d.id, outcome.Kind, outcome.Err)
	} else {
		tool.DefaultLogger.Infof("[Share] dialog %s finished: %s", d.id, outcome.Kind)
	}
	if d.deps.Events == nil {
		return
	}
	params := map[string]any{
		"dialog_id": d.id,
		"outcome":   outcome.Kind.String(),
	}
	if outcome.Err != nil {
		params["error_message"] = outcome.Err.Error()
	}
	d.deps.Events.LogEvent(types.NotifyTypeShareResult, params)
}

func (d *Dialog) remote() RemoteConfig {
	if d.deps.RemoteConfig == nil {
		return noRemoteConfig{}
	}
	return d.deps.RemoteConfig
}

func (d *Dialog) accessToken() *types.AccessToken {
	if d.deps.Tokens == nil {
		return nil
	}
	return d.deps.Tokens.CurrentAccessToken()
}

func (d *Dialog) canShowNative() bool {
	return d.deps.Probe != nil && d.deps.Probe.IsPeerAppInstalled()
}

func (d *Dialog) canShowShareSheet() bool {
	if !d.canShowNative() {
		return false
	}
	return d.deps.Sheets != nil && d.deps.Sheets.Available()
}

func (d *Dialog) canOpenScheme(scheme string) bool {
	return scheme != "" && d.deps.Probe != nil && d.deps.Probe.CanOpenURL(scheme)
}

func kindOf(content types.ShareContent) types.ContentKind {
	if content == nil {
		return types.ContentKindUnknown
	}
	return content.ContentKind()
}

type noRemoteConfig struct{}

func (noRemoteConfig) DefaultShareModeIsComposeSheet() bool { return false }
func (noRemoteConfig) ShouldPreferNativeDialog() bool       { return false }
func (noRemoteConfig) ShouldUseInAppBrowser() bool          { return false }
