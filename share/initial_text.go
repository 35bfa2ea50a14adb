package share

import (
	"strings"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

const legacyAppIDPrefix = "fb-app-id:"

// calculateInitialText builds the compose sheet's prefilled text. Older peer
// apps only understand the legacy "fb-app-id:<id> #tag" prefix, newer ones
// read the JSON fragment after the pipe.
func (d *Dialog) calculateInitialText(content types.ShareContent) string {
	hashtag := validHashtag(content.Shared().Hashtag)
	if !d.canAttributeThroughShareSheet() {
		return hashtag
	}

	params := map[string]any{}
	if d.deps.AppID != "" {
		params["app_id"] = d.deps.AppID
	}
	if hashtag != "" {
		params["hashtags"] = []string{hashtag}
	}
	if link, ok := content.(*types.LinkContent); ok && link.Quote != "" {
		params["quotes"] = []string{link.Quote}
	}
	var fragment string
	if len(params) > 0 {
		fragment = tool.JSONString(params)
	}
	return buildInitialText(d.deps.AppID, hashtag, fragment)
}

func (d *Dialog) canAttributeThroughShareSheet() bool {
	return d.canOpenScheme(d.deps.ShareExtensionScheme)
}

// buildInitialText joins "fb-app-id:<appID>", the hashtag (space separated)
// and the JSON fragment (pipe separated), skipping empty parts.
func buildInitialText(appID, hashtag, fragment string) string {
	var b strings.Builder
	if appID != "" {
		b.WriteString(legacyAppIDPrefix)
		b.WriteString(appID)
	}
	if hashtag != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(hashtag)
	}
	if fragment != "" {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(fragment)
	}
	return b.String()
}
