package tool

import (
	flag "github.com/spf13/pflag"

	"github.com/moyoez/sharekit/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseMode, "mode", "automatic", "share mode: automatic|native|share_sheet|browser|web|feed_browser|feed_web")
	flag.IntVar(&cfg.UseCallbackPort, "useCallbackPort", 0, "override callback server port")
	flag.StringVar(&cfg.UsePeerBaseURL, "usePeerBaseURL", "", "override the peer app base URL")
	flag.BoolVar(&cfg.UseStrict, "strict", false, "fail validation on malformed optional data (e.g. hashtags)")
	flag.BoolVar(&cfg.SkipNotify, "skipNotify", false, "do not push events to the notify socket")
	flag.BoolVar(&cfg.SkipServer, "skipServer", false, "do not start the callback server")
	flag.StringVar(&cfg.Link, "link", "", "share a link")
	flag.StringVar(&cfg.Quote, "quote", "", "quote attached to a link share")
	flag.StringVar(&cfg.Hashtag, "hashtag", "", "hashtag, e.g. #fun")
	flag.StringSliceVar(&cfg.Photos, "photo", nil, "local image file to share (repeatable)")
	flag.StringSliceVar(&cfg.PhotoURLs, "photoURL", nil, "remote image URL to share (repeatable)")
	flag.StringSliceVar(&cfg.Videos, "video", nil, "local video file to share as raw bytes (repeatable, more than one makes a media share)")
	flag.StringVar(&cfg.VideoURL, "videoURL", "", "video file URL to share")
	flag.StringVar(&cfg.EffectID, "effect", "", "camera effect id")
	flag.StringVar(&cfg.SurfaceID, "surface", "cli", "presenting surface id, empty for none")
	flag.IntVar(&cfg.WaitSeconds, "wait", 300, "seconds to wait for the share outcome")
	flag.Parse()
	return cfg
}
