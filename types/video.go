package types

// VideoSourceKind tells which of the video's references is populated.
type VideoSourceKind int

const (
	VideoSourceNone VideoSourceKind = iota
	VideoSourceAsset
	VideoSourceData
	VideoSourceURL
)

// ShareVideo references a single video by library asset, raw bytes or URL.
// Like SharePhoto, setting one reference clears the others.
type ShareVideo struct {
	kind  VideoSourceKind
	asset string
	data  []byte
	url   string

	PreviewPhoto *SharePhoto `json:"previewPhoto,omitempty"`
}

func (*ShareVideo) isMediaItem() {}

func VideoFromAsset(id string) *ShareVideo {
	v := &ShareVideo{}
	v.SetAsset(id)
	return v
}

func VideoFromData(data []byte) *ShareVideo {
	v := &ShareVideo{}
	v.SetData(data)
	return v
}

func VideoFromURL(url string) *ShareVideo {
	v := &ShareVideo{}
	v.SetURL(url)
	return v
}

func (v *ShareVideo) SetAsset(id string) {
	*v = ShareVideo{kind: VideoSourceAsset, asset: id, PreviewPhoto: v.PreviewPhoto}
}

func (v *ShareVideo) SetData(data []byte) {
	*v = ShareVideo{kind: VideoSourceData, data: data, PreviewPhoto: v.PreviewPhoto}
}

func (v *ShareVideo) SetURL(url string) {
	*v = ShareVideo{kind: VideoSourceURL, url: url, PreviewPhoto: v.PreviewPhoto}
}

func (v *ShareVideo) Source() VideoSourceKind { return v.kind }

func (v *ShareVideo) Asset() string { return v.asset }

func (v *ShareVideo) Data() []byte { return v.data }

func (v *ShareVideo) URL() string { return v.url }

func (v *ShareVideo) HasSource() bool {
	switch v.kind {
	case VideoSourceAsset:
		return v.asset != ""
	case VideoSourceData:
		return len(v.data) > 0
	case VideoSourceURL:
		return v.url != ""
	default:
		return false
	}
}
