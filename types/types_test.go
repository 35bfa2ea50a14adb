package types

import (
	"errors"
	"testing"
)

func TestSharePhotoLastSourceWins(t *testing.T) {
	p := PhotoFromImage([]byte{1, 2, 3})
	p.Caption = "sunset"
	p.SetImageURL("https://example.com/a.jpg")

	if p.Source() != PhotoSourceURL {
		t.Fatalf("Expected URL source, got %v", p.Source())
	}
	if p.Image() != nil {
		t.Error("Image should be cleared after setting a URL")
	}
	if p.Caption != "sunset" {
		t.Errorf("Caption should survive a source change, got %q", p.Caption)
	}

	p.SetAsset("")
	if p.HasSource() {
		t.Error("Empty asset should not count as a source")
	}
	if p.ImageURL() != "" {
		t.Error("URL should be cleared after setting an asset")
	}
}

func TestShareVideoLastSourceWins(t *testing.T) {
	v := VideoFromURL("https://example.com/a.mp4")
	v.PreviewPhoto = PhotoFromAsset("thumb")
	v.SetData([]byte("raw"))

	if v.Source() != VideoSourceData || v.URL() != "" || string(v.Data()) != "raw" {
		t.Errorf("Unexpected video state: source=%v url=%q", v.Source(), v.URL())
	}
	if v.PreviewPhoto == nil || v.PreviewPhoto.Asset() != "thumb" {
		t.Error("Preview photo should survive a source change")
	}
	if (&ShareVideo{}).HasSource() {
		t.Error("Zero video should have no source")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"", ModeAutomatic, false},
		{"native", ModeNative, false},
		{"shareSheet", ModeShareSheet, false},
		{"share_sheet", ModeShareSheet, false},
		{"Feed-Web", ModeFeedWeb, false},
		{"feed_browser", ModeFeedBrowser, false},
		{"carrier-pigeon", ModeAutomatic, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseMode(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Mode(99).String() != "unknown" {
		t.Error("Out-of-range mode should print as unknown")
	}
}

func TestScanMedia(t *testing.T) {
	tests := []struct {
		name                  string
		content               ShareContent
		media, photos, videos bool
	}{
		{"link", NewLinkContent("https://example.com"), false, false, false},
		{"photos", &PhotoContent{Photos: []*SharePhoto{PhotoFromURL("https://example.com/a.jpg")}}, true, true, false},
		{"empty photos", &PhotoContent{}, false, false, false},
		{"video", &VideoContent{Video: VideoFromAsset("v1")}, true, false, true},
		{"mixed", &MediaContent{Items: []MediaItem{PhotoFromAsset("p"), VideoFromAsset("v")}}, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media, photos, videos := ScanMedia(tt.content)
			if media != tt.media || photos != tt.photos || videos != tt.videos {
				t.Errorf("ScanMedia() = %v %v %v, want %v %v %v", media, photos, videos, tt.media, tt.photos, tt.videos)
			}
		})
	}
}

func TestOutcomeConstructors(t *testing.T) {
	if o := Completed(nil); o.Kind != OutcomeCompleted || o.Results == nil {
		t.Errorf("Completed(nil) should carry an empty map, got %+v", o)
	}
	boom := errors.New("boom")
	if o := Failed(boom); o.Kind != OutcomeFailed || !errors.Is(o.Err, boom) {
		t.Errorf("Unexpected failed outcome: %+v", o)
	}
	if Cancelled().Kind.String() != "cancelled" {
		t.Error("Cancelled outcome should print as cancelled")
	}
}

func TestAccessTokenValid(t *testing.T) {
	var nilToken *AccessToken
	if nilToken.Valid() {
		t.Error("nil token should be invalid")
	}
	if !(&AccessToken{Token: "abc"}).Valid() {
		t.Error("Token without expiry should be valid")
	}
}
