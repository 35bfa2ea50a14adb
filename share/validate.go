package share

import (
	"net/url"
	"regexp"

	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

const (
	maxPhotos     = 6
	maxMediaItems = 20
)

type bridgeOptions uint8

const (
	optionsDefault bridgeOptions = 0
	// photos must be referenced by a remote image URL
	optionPhotoImageURL bridgeOptions = 1 << iota
)

var (
	hashtagPattern  = regexp.MustCompile(`^#[\p{L}\p{N}_]+$`)
	effectIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func (d *Dialog) validate(content types.ShareContent, mode types.Mode) error {
	if content == nil {
		return errors.WithStack(ErrMissingContent)
	}
	if err := d.validateStructure(content); err != nil {
		return err
	}
	return d.validateForMode(content, mode)
}

func (d *Dialog) validateForMode(content types.ShareContent, mode types.Mode) error {
	switch mode {
	case types.ModeAutomatic:
		checks := []func(types.ShareContent) error{
			d.validateForNative,
			d.validateForShareSheet,
			d.validateForFeed,
			func(c types.ShareContent) error { return d.validateForBrowser(c, false) },
		}
		var err error
		for _, check := range checks {
			if err = check(content); err == nil {
				return nil
			}
		}
		return err
	case types.ModeNative:
		return d.validateForNative(content)
	case types.ModeShareSheet:
		return d.validateForShareSheet(content)
	case types.ModeBrowser:
		return d.validateForBrowser(content, false)
	case types.ModeWeb:
		return d.validateForBrowser(content, true)
	case types.ModeFeedBrowser, types.ModeFeedWeb:
		return d.validateForFeed(content)
	default:
		return errors.Errorf("unknown share mode %d", mode)
	}
}

// validateStructure runs the checks every mode shares.
func (d *Dialog) validateStructure(content types.ShareContent) error {
	switch c := content.(type) {
	case *types.LinkContent:
		if c == nil {
			return errors.WithStack(ErrMissingContent)
		}
		if err := validateLinkURL(c.ContentURL); err != nil {
			return err
		}
	case *types.PhotoContent:
		if c == nil {
			return errors.WithStack(ErrMissingContent)
		}
		if err := validatePhotoList(c.Photos, optionsDefault); err != nil {
			return err
		}
	case *types.VideoContent:
		if c == nil {
			return errors.WithStack(ErrMissingContent)
		}
		if c.Video == nil {
			return invalid("video", "is required")
		}
		if err := d.validateVideo(c.Video); err != nil {
			return err
		}
	case *types.MediaContent:
		if c == nil {
			return errors.WithStack(ErrMissingContent)
		}
		if err := d.validateMediaItems(c.Items); err != nil {
			return err
		}
	case *types.CameraEffectContent:
		if c == nil {
			return errors.WithStack(ErrMissingContent)
		}
		if c.EffectID == "" {
			return invalid("effectID", "is required")
		}
		if !effectIDPattern.MatchString(c.EffectID) {
			return invalid("effectID", "must be alphanumeric")
		}
	default:
		return errors.Wrapf(ErrUnsupportedContentKind, "%T", content)
	}
	return d.validateHashtag(content.Shared().Hashtag)
}

func validateLinkURL(raw string) error {
	if raw == "" {
		return invalid("contentURL", "is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return invalid("contentURL", "is not a valid URL")
	}
	return nil
}

// validateHashtag rejects malformed hashtags only in strict mode; otherwise
// they are dropped from the outgoing parameters.
func (d *Dialog) validateHashtag(hashtag string) error {
	if hashtag == "" || hashtagPattern.MatchString(hashtag) {
		return nil
	}
	if d.StrictValidation {
		return invalid("hashtag", "must start with # and contain only letters, digits and underscores")
	}
	tool.DefaultLogger.Warnf("[Share] ignoring invalid hashtag %q", hashtag)
	return nil
}

func validHashtag(hashtag string) string {
	if hashtagPattern.MatchString(hashtag) {
		return hashtag
	}
	return ""
}

func validatePhotoList(photos []*types.SharePhoto, opts bridgeOptions) error {
	if len(photos) == 0 {
		return invalid("photos", "must contain at least 1 photo")
	}
	if len(photos) > maxPhotos {
		return invalid("photos", "must contain at most 6 photos")
	}
	for _, photo := range photos {
		if err := validatePhoto(photo, opts); err != nil {
			return err
		}
	}
	return nil
}

func validatePhoto(photo *types.SharePhoto, opts bridgeOptions) error {
	if photo == nil {
		return invalid("photo", "is required")
	}
	if !photo.HasSource() {
		return invalid("photo", "must have an image, imageURL or photoAsset")
	}
	if opts&optionPhotoImageURL != 0 {
		if photo.Source() != types.PhotoSourceURL || !tool.IsNetworkURL(photo.ImageURL()) {
			return invalid("imageURL", "a remote image URL is required")
		}
	}
	return nil
}

func (d *Dialog) validateVideo(video *types.ShareVideo) error {
	if !video.HasSource() {
		return invalid("video", "must have an asset, data, or videoURL value")
	}
	switch video.Source() {
	case types.VideoSourceURL:
		u, err := url.Parse(video.URL())
		if err != nil || u.Scheme == "" {
			return invalid("videoURL", "is not a valid URL")
		}
	case types.VideoSourceData:
		if _, err := d.videoURL(video); err != nil {
			return invalid("videoURL", "no usable URL")
		}
	}
	if video.PreviewPhoto != nil {
		return validatePhoto(video.PreviewPhoto, optionsDefault)
	}
	return nil
}

func (d *Dialog) validateMediaItems(items []types.MediaItem) error {
	if len(items) == 0 {
		return invalid("media", "must contain at least 1 item")
	}
	if len(items) > maxMediaItems {
		return invalid("media", "must contain at most 20 items")
	}
	for _, item := range items {
		switch it := item.(type) {
		case *types.SharePhoto:
			if err := validatePhoto(it, optionsDefault); err != nil {
				return err
			}
		case *types.ShareVideo:
			if it == nil {
				return invalid("video", "is required")
			}
			if err := d.validateVideo(it); err != nil {
				return err
			}
		default:
			return invalid("media", "contains an unsupported item")
		}
	}
	return nil
}

func (d *Dialog) validateForNative(content types.ShareContent) error {
	switch c := content.(type) {
	case *types.CameraEffectContent:
		return nil
	case *types.MediaContent:
		if _, photos, videos := types.ScanMedia(c); photos && videos {
			return invalid("shareContent", "multimedia content is only available via the compose sheet")
		}
	}
	return nil
}

func (d *Dialog) validateForShareSheet(content types.ShareContent) error {
	switch c := content.(type) {
	case *types.PhotoContent:
		if !hasInMemoryImage(c.Photos) {
			return invalid("shareContent", "photo content must have in-memory images to be shared with the compose sheet")
		}
	case *types.VideoContent, *types.MediaContent:
		if !d.canOpenScheme(d.deps.ShareExtensionScheme) {
			return errors.Wrap(ErrAmbiguousValidation, "the peer app cannot be opened directly to receive video")
		}
	case *types.CameraEffectContent:
		return invalid("shareContent", "camera effects can only be shared with the peer app")
	}
	return nil
}

func (d *Dialog) validateForBrowser(content types.ShareContent, web bool) error {
	if _, ok := content.(*types.CameraEffectContent); ok {
		return invalid("shareContent", "camera effects can only be shared with the peer app")
	}
	_, photos, videos := types.ScanMedia(content)
	if photos {
		if !d.accessToken().Valid() {
			return invalid("accessToken", "a valid access token is required to stage photos")
		}
		if c, ok := content.(*types.PhotoContent); ok && web {
			if err := validatePhotoList(c.Photos, optionPhotoImageURL); err != nil {
				return err
			}
		}
	}
	if videos {
		if !d.accessToken().Valid() {
			return invalid("accessToken", "a valid access token is required to stage videos")
		}
	}
	if _, ok := content.(*types.MediaContent); ok && web {
		return invalid("shareContent", "web share dialogs cannot include local media")
	}
	return nil
}

func (d *Dialog) validateForFeed(content types.ShareContent) error {
	link, ok := content.(*types.LinkContent)
	if !ok {
		return invalid("shareContent", "feed share dialogs only support link content")
	}
	if link.ContentURL == "" {
		return invalid("contentURL", "is required")
	}
	return nil
}

func hasInMemoryImage(photos []*types.SharePhoto) bool {
	for _, photo := range photos {
		if photo != nil && photo.Source() == types.PhotoSourceImage && len(photo.Image()) > 0 {
			return true
		}
	}
	return false
}
