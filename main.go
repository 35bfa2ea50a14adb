package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/moyoez/sharekit/api"
	"github.com/moyoez/sharekit/api/notifyhub"
	"github.com/moyoez/sharekit/bridge"
	"github.com/moyoez/sharekit/notify"
	"github.com/moyoez/sharekit/probe"
	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/surface"
	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/transfer"
	"github.com/moyoez/sharekit/types"
)

// cliDelegate forwards the dialog outcome to main.
type cliDelegate struct {
	done chan types.Outcome
}

func (c *cliDelegate) OnComplete(_ *share.Dialog, results map[string]any) {
	c.done <- types.Completed(results)
}

func (c *cliDelegate) OnFail(_ *share.Dialog, err error) {
	c.done <- types.Failed(err)
}

func (c *cliDelegate) OnCancel(_ *share.Dialog) {
	c.done <- types.Cancelled()
}

func main() {
	cfg := tool.SetFlags()

	// initialize logger
	tool.InitLogger()
	tool.SetLogMode(cfg.Log)

	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseCallbackPort > 0 {
		if appCfg.CallbackPublicURL == tool.BuildLocalCallbackBase(appCfg.CallbackPort) {
			appCfg.CallbackPublicURL = tool.BuildLocalCallbackBase(cfg.UseCallbackPort)
		}
		appCfg.CallbackPort = cfg.UseCallbackPort
	}
	if cfg.UsePeerBaseURL != "" {
		appCfg.PeerBaseURL = cfg.UsePeerBaseURL
	}

	mode, err := types.ParseMode(cfg.UseMode)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	tool.SetProgramConfigStatus(mode, cfg.UseStrict)
	notify.SetUseNotify(!cfg.SkipNotify)

	hub := notifyhub.New()
	launcher := bridge.NewTerminalLauncher()
	opener := bridge.NewOpener(appCfg.PeerBaseURL, launcher)
	webDialogs := surface.NewWebDialogs(appCfg.WebBaseURL, appCfg.CallbackPublicURL, launcher, hub)
	sheets := surface.NewComposeSheets(!cfg.SkipServer, hub)

	api.SetShareBackends(opener, webDialogs, sheets)
	api.SetNotifyHub(hub)

	apiServer := api.NewServer(appCfg.CallbackPort)
	if !cfg.SkipServer {
		go func() {
			if err := apiServer.Start(); err != nil {
				tool.DefaultLogger.Fatalf("Callback server startup failed: %v", err)
			}
		}()
	}

	fs := afero.NewOsFs()
	content, err := buildContent(fs, cfg)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	var presenting *types.Surface
	if cfg.SurfaceID != "" {
		presenting = &types.Surface{ID: cfg.SurfaceID, Title: "sharekit"}
	}

	delegate := &cliDelegate{done: make(chan types.Outcome, 1)}
	dialog := share.New(presenting, content, delegate, share.Deps{
		Probe:                probe.NewPeer(appCfg.PeerBaseURL, appCfg.Probe),
		BridgeFactory:        bridge.NewFactory(&appCfg),
		BridgeOpener:         opener,
		WebDialogs:           webDialogs,
		Sheets:               sheets,
		RemoteConfig:         tool.NewRemoteConfig(appCfg.Remote),
		Tokens:               tool.NewTokenStoreFromConfig(&appCfg),
		Stager:               transfer.NewStager(appCfg.StagingURL),
		Events:               notify.NewAnalytics(appCfg.NotifySocket, hub),
		Fs:                   fs,
		TempDir:              appCfg.TempDir,
		AppID:                appCfg.AppID,
		PeerScheme:           appCfg.PeerScheme,
		ShareExtensionScheme: appCfg.ShareExtensionScheme,
	})
	dialog.Mode = mode
	dialog.StrictValidation = cfg.UseStrict

	var outcome types.Outcome
	if dialog.Show() {
		tool.DefaultLogger.Infof("Share dialog %s shown via %s, waiting for the result", dialog.ID(), dialog.ShownMode())
	}
	select {
	case outcome = <-delegate.done:
	case <-time.After(time.Duration(cfg.WaitSeconds) * time.Second):
		outcome = types.Failed(errors.Errorf("no share result after %ds", cfg.WaitSeconds))
	}

	dialog.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := apiServer.Shutdown(ctx); err != nil {
		tool.DefaultLogger.Warnf("Callback server shutdown: %v", err)
	}
	cancel()

	switch outcome.Kind {
	case types.OutcomeCompleted:
		tool.DefaultLogger.Infof("Share completed: %v", outcome.Results)
	case types.OutcomeCancelled:
		tool.DefaultLogger.Info("Share cancelled")
	default:
		tool.DefaultLogger.Errorf("Share failed: %v", outcome.Err)
		os.Exit(1)
	}
}

// buildContent turns the share flags into content. An effect id wins, then
// mixed or multi-video media, a single video, photos and finally a link.
func buildContent(fs afero.Fs, cfg types.Config) (types.ShareContent, error) {
	common := types.Common{ContentURL: cfg.Link, Hashtag: cfg.Hashtag}

	if cfg.EffectID != "" {
		return &types.CameraEffectContent{Common: common, EffectID: cfg.EffectID}, nil
	}

	var photos []*types.SharePhoto
	for _, path := range cfg.Photos {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read photo %s", path)
		}
		photos = append(photos, types.PhotoFromImage(data))
	}
	for _, u := range cfg.PhotoURLs {
		photos = append(photos, types.PhotoFromURL(u))
	}

	var videos []*types.ShareVideo
	for _, path := range cfg.Videos {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read video %s", path)
		}
		videos = append(videos, types.VideoFromData(data))
	}
	if cfg.VideoURL != "" {
		videos = append(videos, types.VideoFromURL(cfg.VideoURL))
	}

	switch {
	case len(videos) > 1 || (len(videos) > 0 && len(photos) > 0):
		items := make([]types.MediaItem, 0, len(photos)+len(videos))
		for _, p := range photos {
			items = append(items, p)
		}
		for _, v := range videos {
			items = append(items, v)
		}
		return &types.MediaContent{Common: common, Items: items}, nil
	case len(videos) == 1:
		return &types.VideoContent{Common: common, Video: videos[0]}, nil
	case len(photos) > 0:
		return &types.PhotoContent{Common: common, Photos: photos}, nil
	case cfg.Link != "":
		link := types.NewLinkContent(cfg.Link)
		link.Hashtag = cfg.Hashtag
		link.Quote = cfg.Quote
		return link, nil
	}
	return nil, errors.New("nothing to share: pass -link, -photo, -photoURL, -video, -videoURL or -effect")
}
