package types

import (
	"fmt"
	"strings"
)

// Mode selects which channel(s) a share dialog tries.
type Mode int

const (
	ModeAutomatic Mode = iota
	ModeNative
	ModeShareSheet
	ModeBrowser
	ModeWeb
	ModeFeedBrowser
	ModeFeedWeb
)

var modeNames = map[Mode]string{
	ModeAutomatic:   "automatic",
	ModeNative:      "native",
	ModeShareSheet:  "share_sheet",
	ModeBrowser:     "browser",
	ModeWeb:         "web",
	ModeFeedBrowser: "feed_browser",
	ModeFeedWeb:     "feed_web",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode accepts the names printed by String, case-insensitive. Dashes and
// camel case ("shareSheet", "feed-web") are accepted too.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if norm == "" {
		return ModeAutomatic, nil
	}
	for mode, name := range modeNames {
		if norm == name || norm == strings.ReplaceAll(name, "_", "") {
			return mode, nil
		}
	}
	return ModeAutomatic, fmt.Errorf("unknown share mode %q", s)
}
