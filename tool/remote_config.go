package tool

import "github.com/moyoez/sharekit/types"

const defaultShareModeShareSheet = "share_sheet"

// RemoteConfig serves the dialog flags read from config.yaml / environment.
type RemoteConfig struct {
	flags types.RemoteFlags
}

func NewRemoteConfig(flags types.RemoteFlags) *RemoteConfig {
	return &RemoteConfig{flags: flags}
}

func (r *RemoteConfig) DefaultShareModeIsComposeSheet() bool {
	return r.flags.DefaultShareMode == defaultShareModeShareSheet
}

func (r *RemoteConfig) ShouldPreferNativeDialog() bool {
	return r.flags.PreferNativeDialog
}

func (r *RemoteConfig) ShouldUseInAppBrowser() bool {
	return r.flags.UseInAppBrowser
}
