package share

import (
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

const assetURLScheme = "asset"

// videoURL returns a URL the channels can hand out for video. Raw bytes are
// written to a temporary file once per video and dialog.
func (d *Dialog) videoURL(video *types.ShareVideo) (string, error) {
	switch video.Source() {
	case types.VideoSourceURL:
		return video.URL(), nil
	case types.VideoSourceAsset:
		return assetURL(video.Asset()), nil
	case types.VideoSourceData:
		d.mu.Lock()
		path, ok := d.stagedVideos[video]
		d.mu.Unlock()
		if ok {
			return tool.FileURL(path), nil
		}
		path, err := d.tracker.stage(video.Data())
		if err != nil {
			tool.DefaultLogger.Warnf("[Share] could not stage video bytes: %v", err)
			return "", err
		}
		d.mu.Lock()
		d.stagedVideos[video] = path
		d.mu.Unlock()
		return tool.FileURL(path), nil
	default:
		return "", errors.New("video has no source")
	}
}

func assetURL(id string) string {
	return assetURLScheme + "://" + id
}

func photoURL(photo *types.SharePhoto) string {
	switch photo.Source() {
	case types.PhotoSourceURL:
		return photo.ImageURL()
	case types.PhotoSourceAsset:
		return assetURL(photo.Asset())
	default:
		return ""
	}
}

// contentImages collects the in-memory images of photo and media content.
func contentImages(content types.ShareContent) [][]byte {
	var photos []*types.SharePhoto
	switch c := content.(type) {
	case *types.PhotoContent:
		photos = c.Photos
	case *types.MediaContent:
		for _, item := range c.Items {
			if photo, ok := item.(*types.SharePhoto); ok {
				photos = append(photos, photo)
			}
		}
	}
	var images [][]byte
	for _, photo := range photos {
		if photo != nil && photo.Source() == types.PhotoSourceImage {
			images = append(images, photo.Image())
		}
	}
	return images
}

// contentURLs collects the link, or the distinct image URLs of photo content.
func contentURLs(content types.ShareContent) []string {
	switch c := content.(type) {
	case *types.LinkContent:
		if c.ContentURL == "" {
			return nil
		}
		return []string{c.ContentURL}
	case *types.PhotoContent:
		seen := make(map[string]struct{})
		var urls []string
		for _, photo := range c.Photos {
			if photo == nil || photo.Source() != types.PhotoSourceURL {
				continue
			}
			if _, dup := seen[photo.ImageURL()]; dup {
				continue
			}
			seen[photo.ImageURL()] = struct{}{}
			urls = append(urls, photo.ImageURL())
		}
		return urls
	default:
		return nil
	}
}

func (d *Dialog) contentVideoURLs(content types.ShareContent) ([]string, error) {
	var videos []*types.ShareVideo
	switch c := content.(type) {
	case *types.VideoContent:
		videos = append(videos, c.Video)
	case *types.MediaContent:
		for _, item := range c.Items {
			if video, ok := item.(*types.ShareVideo); ok {
				videos = append(videos, video)
			}
		}
	}
	urls := make([]string, 0, len(videos))
	for _, video := range videos {
		u, err := d.videoURL(video)
		if err != nil {
			return nil, invalid("videoURL", "no usable URL")
		}
		urls = append(urls, u)
	}
	return urls, nil
}
