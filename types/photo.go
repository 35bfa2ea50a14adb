package types

// PhotoSourceKind tells which of the photo's sources is populated.
type PhotoSourceKind int

const (
	PhotoSourceNone PhotoSourceKind = iota
	PhotoSourceImage
	PhotoSourceURL
	PhotoSourceAsset
)

// SharePhoto is a single photo. It holds exactly one source at a time:
// setting one source clears the others.
type SharePhoto struct {
	kind  PhotoSourceKind
	image []byte
	url   string
	asset string

	Caption       string `json:"caption,omitempty"`
	UserGenerated bool   `json:"userGenerated,omitempty"`
}

func (*SharePhoto) isMediaItem() {}

func PhotoFromImage(image []byte) *SharePhoto {
	p := &SharePhoto{}
	p.SetImage(image)
	return p
}

func PhotoFromURL(url string) *SharePhoto {
	p := &SharePhoto{}
	p.SetImageURL(url)
	return p
}

func PhotoFromAsset(id string) *SharePhoto {
	p := &SharePhoto{}
	p.SetAsset(id)
	return p
}

func (p *SharePhoto) SetImage(image []byte) {
	*p = SharePhoto{kind: PhotoSourceImage, image: image, Caption: p.Caption, UserGenerated: p.UserGenerated}
}

func (p *SharePhoto) SetImageURL(url string) {
	*p = SharePhoto{kind: PhotoSourceURL, url: url, Caption: p.Caption, UserGenerated: p.UserGenerated}
}

func (p *SharePhoto) SetAsset(id string) {
	*p = SharePhoto{kind: PhotoSourceAsset, asset: id, Caption: p.Caption, UserGenerated: p.UserGenerated}
}

func (p *SharePhoto) Source() PhotoSourceKind { return p.kind }

// Image returns the in-memory image, or nil when another source is active.
func (p *SharePhoto) Image() []byte { return p.image }

func (p *SharePhoto) ImageURL() string { return p.url }

func (p *SharePhoto) Asset() string { return p.asset }

// HasSource reports whether the active source carries a value.
func (p *SharePhoto) HasSource() bool {
	switch p.kind {
	case PhotoSourceImage:
		return len(p.image) > 0
	case PhotoSourceURL:
		return p.url != ""
	case PhotoSourceAsset:
		return p.asset != ""
	default:
		return false
	}
}
