package share

import (
	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

type fallbackStep struct {
	mode    types.Mode
	enabled bool
}

// automaticSequence orders the channels tried in automatic mode.
// defaultToSheet and preferNative come from remote config, except that camera
// effects never default to the sheet and always prefer native.
func automaticSequence(defaultToSheet, preferNative bool) []fallbackStep {
	return []fallbackStep{
		{types.ModeShareSheet, defaultToSheet},
		{types.ModeNative, preferNative},
		{types.ModeShareSheet, !defaultToSheet},
		{types.ModeFeedBrowser, true},
		{types.ModeFeedWeb, true},
		{types.ModeBrowser, true},
		{types.ModeWeb, true},
		{types.ModeNative, !preferNative},
	}
}

// showAutomatic walks the sequence until one channel initiates. Only a
// synchronous error moves on to the next channel.
func (d *Dialog) showAutomatic(content types.ShareContent) error {
	_, isEffect := content.(*types.CameraEffectContent)
	defaultToSheet := !isEffect && d.remote().DefaultShareModeIsComposeSheet()
	preferNative := isEffect || d.remote().ShouldPreferNativeDialog()

	var lastErr error
	for _, step := range automaticSequence(defaultToSheet, preferNative) {
		if !step.enabled {
			continue
		}
		err := d.showWithMode(step.mode, content)
		if err == nil {
			d.setShownMode(step.mode)
			return nil
		}
		tool.DefaultLogger.Debugf("[Share] dialog %s: %s unavailable: %v", d.id, step.mode, err)
		lastErr = err
	}
	return lastErr
}

// Channels tried, in order, when the peer app answers that it is too old for
// the request. Applies to that error code only.
var appVersionUnsupportedFallback = []types.Mode{
	types.ModeShareSheet,
	types.ModeFeedBrowser,
}

// retryAfterAppVersionUnsupported runs the version fallback table from inside
// the native callback. It reports whether one of the channels initiated.
func (d *Dialog) retryAfterAppVersionUnsupported(content types.ShareContent) bool {
	for _, mode := range appVersionUnsupportedFallback {
		err := d.showWithMode(mode, content)
		if err == nil {
			d.setShownMode(mode)
			tool.DefaultLogger.Infof("[Share] dialog %s: peer app too old, fell back to %s", d.id, mode)
			return true
		}
		tool.DefaultLogger.Debugf("[Share] dialog %s: version fallback %s unavailable: %v", d.id, mode, err)
	}
	return false
}
