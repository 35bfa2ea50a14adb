package types

// ContentKind identifies which variant of ShareContent is active.
type ContentKind int

const (
	ContentKindUnknown ContentKind = iota
	ContentKindLink
	ContentKindPhoto
	ContentKindVideo
	ContentKindMedia
	ContentKindCameraEffect
)

func (k ContentKind) String() string {
	switch k {
	case ContentKindLink:
		return "Link"
	case ContentKindPhoto:
		return "Photo"
	case ContentKindVideo:
		return "Video"
	case ContentKindMedia:
		return "Media"
	case ContentKindCameraEffect:
		return "Camera"
	default:
		return "Unknown"
	}
}

// ShareContent is the content handed to a share dialog.
// Only the five kinds declared in this package are deliverable; any other
// implementation is rejected at validation time.
type ShareContent interface {
	ContentKind() ContentKind
	Shared() *Common
}

// Common holds the attributes every content kind carries.
type Common struct {
	ContentURL string `json:"contentURL,omitempty" yaml:"contentURL,omitempty"`
	Hashtag    string `json:"hashtag,omitempty" yaml:"hashtag,omitempty"`
	PlaceID    string `json:"placeID,omitempty" yaml:"placeID,omitempty"`
	Ref        string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Shared implements ShareContent for every embedding kind.
func (c *Common) Shared() *Common {
	return c
}

// LinkContent shares a URL, optionally with a quote.
type LinkContent struct {
	Common
	Quote string `json:"quote,omitempty"`
}

func NewLinkContent(url string) *LinkContent {
	return &LinkContent{Common: Common{ContentURL: url}}
}

func (*LinkContent) ContentKind() ContentKind { return ContentKindLink }

// URL returns the shared link.
func (c *LinkContent) URL() string { return c.ContentURL }

// PhotoContent shares one or more photos.
type PhotoContent struct {
	Common
	Photos []*SharePhoto `json:"photos"`
}

func (*PhotoContent) ContentKind() ContentKind { return ContentKindPhoto }

// VideoContent shares a single video.
type VideoContent struct {
	Common
	Video *ShareVideo `json:"video"`
}

func (*VideoContent) ContentKind() ContentKind { return ContentKindVideo }

// MediaItem is either *SharePhoto or *ShareVideo.
type MediaItem interface {
	isMediaItem()
}

// MediaContent shares a heterogeneous collection of photos and videos.
type MediaContent struct {
	Common
	Items []MediaItem `json:"items"`
}

func (*MediaContent) ContentKind() ContentKind { return ContentKindMedia }

// CameraEffectContent hands a camera effect to the peer app.
type CameraEffectContent struct {
	Common
	EffectID  string            `json:"effectID"`
	Arguments map[string]string `json:"arguments,omitempty"`
	Textures  map[string][]byte `json:"textures,omitempty"`
}

func (*CameraEffectContent) ContentKind() ContentKind { return ContentKindCameraEffect }

// ScanMedia reports which media the content carries.
func ScanMedia(content ShareContent) (containsMedia, containsPhotos, containsVideos bool) {
	switch c := content.(type) {
	case *PhotoContent:
		containsPhotos = len(c.Photos) > 0
	case *VideoContent:
		containsVideos = c.Video != nil
	case *MediaContent:
		for _, item := range c.Items {
			switch item.(type) {
			case *SharePhoto:
				containsPhotos = true
			case *ShareVideo:
				containsVideos = true
			}
		}
	}
	containsMedia = containsPhotos || containsVideos
	return
}
