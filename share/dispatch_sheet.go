package share

import (
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/types"
)

// showShareSheet fills a compose sheet and presents it from the dialog's surface.
func (d *Dialog) showShareSheet(content types.ShareContent) error {
	if !d.canShowShareSheet() {
		return errors.Wrap(ErrChannelUnavailable, "compose sheet is not available")
	}
	if err := d.validateForShareSheet(content); err != nil {
		return err
	}
	if d.Surface == nil {
		return invalid("surface", "a presenting surface is required")
	}

	videoURLs, err := d.contentVideoURLs(content)
	if err != nil {
		return err
	}
	sheet, err := d.deps.Sheets.MakeController()
	if err != nil {
		return errors.Wrap(ErrChannelUnavailable, err.Error())
	}
	if sheet == nil {
		return errors.Wrap(ErrChannelUnavailable, "failed to create compose sheet")
	}

	if text := d.calculateInitialText(content); text != "" {
		sheet.SetInitialText(text)
	}
	for _, image := range contentImages(content) {
		sheet.AddImage(image)
	}
	for _, u := range contentURLs(content) {
		sheet.AddURL(u)
	}
	for _, u := range videoURLs {
		sheet.AddVideoURL(u)
	}

	attempt := d.currentAttempt()
	sheet.SetCompletionHandler(func(result SheetResult) {
		switch result {
		case SheetCancelled:
			d.finish(attempt, types.Cancelled())
		default:
			d.finish(attempt, types.Completed(nil))
		}
	})
	if err := sheet.Present(d.Surface); err != nil {
		return errors.Wrap(err, "failed to present compose sheet")
	}
	return nil
}
