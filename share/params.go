package share

import (
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/types"
)

const (
	shareMethodName  = "share"
	cameraMethodName = "camera"
	feedMethodName   = "feed"

	webBridgeScheme = "https"
)

func (d *Dialog) commonParams(content types.ShareContent, params map[string]any) {
	common := content.Shared()
	if hashtag := validHashtag(common.Hashtag); hashtag != "" {
		params["hashtag"] = hashtag
	}
	if common.PlaceID != "" {
		params["place"] = common.PlaceID
	}
	if common.Ref != "" {
		params["ref"] = common.Ref
	}
}

// nativeParams encodes content for the peer app. Images travel inline.
func (d *Dialog) nativeParams(content types.ShareContent) (map[string]any, error) {
	params := map[string]any{
		"dataFailuresFatal": d.StrictValidation,
	}
	d.commonParams(content, params)

	switch c := content.(type) {
	case *types.LinkContent:
		params["link"] = c.ContentURL
		if c.Quote != "" {
			params["quote"] = c.Quote
		}
	case *types.PhotoContent:
		photos := make([]map[string]any, 0, len(c.Photos))
		for _, photo := range c.Photos {
			photos = append(photos, photoParams(photo))
		}
		params["photos"] = photos
		if c.ContentURL != "" {
			params["link"] = c.ContentURL
		}
	case *types.VideoContent:
		video, err := d.videoParams(c.Video)
		if err != nil {
			return nil, err
		}
		params["video"] = video
		if c.ContentURL != "" {
			params["link"] = c.ContentURL
		}
	case *types.MediaContent:
		media := make([]map[string]any, 0, len(c.Items))
		for _, item := range c.Items {
			switch it := item.(type) {
			case *types.SharePhoto:
				entry := photoParams(it)
				entry["type"] = "photo"
				media = append(media, entry)
			case *types.ShareVideo:
				entry, err := d.videoParams(it)
				if err != nil {
					return nil, err
				}
				entry["type"] = "video"
				media = append(media, entry)
			}
		}
		params["media"] = media
	case *types.CameraEffectContent:
		params["effect_id"] = c.EffectID
		if len(c.Arguments) > 0 {
			params["effect_arguments"] = c.Arguments
		}
		if len(c.Textures) > 0 {
			params["effect_textures"] = c.Textures
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedContentKind, "%T", content)
	}
	return params, nil
}

func photoParams(photo *types.SharePhoto) map[string]any {
	entry := map[string]any{}
	switch photo.Source() {
	case types.PhotoSourceImage:
		entry["image"] = photo.Image()
	case types.PhotoSourceURL:
		entry["url"] = photo.ImageURL()
	case types.PhotoSourceAsset:
		entry["asset"] = photo.Asset()
	}
	if photo.Caption != "" {
		entry["caption"] = photo.Caption
	}
	if photo.UserGenerated {
		entry["user_generated"] = true
	}
	return entry
}

func (d *Dialog) videoParams(video *types.ShareVideo) (map[string]any, error) {
	entry := map[string]any{}
	if video.Source() == types.VideoSourceAsset {
		entry["asset"] = video.Asset()
	} else {
		u, err := d.videoURL(video)
		if err != nil {
			return nil, errors.Wrap(ErrRequestConstructionFailed, "video has no usable URL")
		}
		entry["url"] = u
	}
	if video.PreviewPhoto != nil {
		entry["preview"] = photoParams(video.PreviewPhoto)
	}
	return entry, nil
}

// webShareParams builds the method and parameters used by the browser bridge
// and the plain web dialog for content that needs no staging round-trip.
func (d *Dialog) webShareParams(content types.ShareContent) (string, map[string]any, error) {
	params := map[string]any{}
	d.commonParams(content, params)

	switch c := content.(type) {
	case *types.LinkContent:
		params["href"] = c.ContentURL
		if c.Quote != "" {
			params["quote"] = c.Quote
		}
	case *types.PhotoContent:
		var media []string
		for _, photo := range c.Photos {
			if u := photoURL(photo); u != "" {
				media = append(media, u)
			}
		}
		params["media"] = media
	case *types.VideoContent:
		u, err := d.videoURL(c.Video)
		if err != nil {
			return "", nil, errors.Wrap(ErrRequestConstructionFailed, "video has no usable URL")
		}
		params["media"] = []string{u}
	case *types.MediaContent:
		var media []string
		for _, item := range c.Items {
			switch it := item.(type) {
			case *types.SharePhoto:
				if u := photoURL(it); u != "" {
					media = append(media, u)
				}
			case *types.ShareVideo:
				u, err := d.videoURL(it)
				if err != nil {
					return "", nil, errors.Wrap(ErrRequestConstructionFailed, "video has no usable URL")
				}
				media = append(media, u)
			}
		}
		params["media"] = media
	default:
		return "", nil, errors.Wrapf(ErrUnsupportedContentKind, "%T", content)
	}
	return shareMethodName, params, nil
}

// webPhotoParams builds browser parameters once in-memory images are staged.
func (d *Dialog) webPhotoParams(content *types.PhotoContent, stagedURIs []string) map[string]any {
	params := map[string]any{}
	d.commonParams(content, params)
	media := make([]string, 0, len(content.Photos))
	media = append(media, stagedURIs...)
	for _, photo := range content.Photos {
		if u := photoURL(photo); u != "" {
			media = append(media, u)
		}
	}
	params["media"] = media
	return params
}

func feedParams(link *types.LinkContent) map[string]any {
	params := map[string]any{
		"link": link.ContentURL,
	}
	if link.Quote != "" {
		params["quote"] = link.Quote
	}
	if hashtag := validHashtag(link.Hashtag); hashtag != "" {
		params["hashtag"] = hashtag
	}
	if link.PlaceID != "" {
		params["place"] = link.PlaceID
	}
	if link.Ref != "" {
		params["ref"] = link.Ref
	}
	return params
}
