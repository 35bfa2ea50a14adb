package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	AppID                string `yaml:"appId" env:"APP_ID"`
	PeerBaseURL          string `yaml:"peerBaseURL" env:"PEER_BASE_URL"`               // the peer app's local API, e.g. http://127.0.0.1:53318
	PeerScheme           string `yaml:"peerScheme" env:"PEER_SCHEME"`                  // scheme used for native bridge requests
	ShareExtensionScheme string `yaml:"shareExtensionScheme" env:"SHARE_EXT_SCHEME"`   // openable when the peer can attribute compose-sheet posts
	WebBaseURL           string `yaml:"webBaseURL" env:"WEB_BASE_URL"`                 // browser bridge and web dialogs are opened here
	BridgeVersion        string `yaml:"bridgeVersion" env:"BRIDGE_VERSION"`
	CallbackPort         int    `yaml:"callbackPort" env:"CALLBACK_PORT"`
	CallbackPublicURL    string `yaml:"callbackPublicURL" env:"CALLBACK_PUBLIC_URL"`   // how the peer and browser reach our callback server
	StagingURL           string `yaml:"stagingURL" env:"STAGING_URL"`                  // photo staging endpoint for browser shares
	AccessToken          string `yaml:"accessToken,omitempty" env:"ACCESS_TOKEN"`
	AccessTokenExpiresAt string `yaml:"accessTokenExpiresAt,omitempty" env:"ACCESS_TOKEN_EXPIRES_AT"` // RFC3339, empty = never
	TempDir              string `yaml:"tempDir,omitempty" env:"TEMP_DIR"`
	NotifySocket         string `yaml:"notifySocket,omitempty" env:"NOTIFY_SOCKET"`

	Remote RemoteFlags `yaml:"remote" envPrefix:"REMOTE_"`
	Probe  ProbeConfig `yaml:"probe" envPrefix:"PROBE_"`
}

// RemoteFlags mirrors the server-side dialog configuration.
type RemoteFlags struct {
	DefaultShareMode   string `yaml:"defaultShareMode" env:"DEFAULT_SHARE_MODE"` // "share_sheet" or anything else
	PreferNativeDialog bool   `yaml:"preferNativeDialog" env:"PREFER_NATIVE_DIALOG"`
	UseInAppBrowser    bool   `yaml:"useInAppBrowser" env:"USE_IN_APP_BROWSER"`
}

// ProbeConfig tunes how peer availability is detected.
type ProbeConfig struct {
	UsePing      bool `yaml:"usePing" env:"USE_PING"`           // ICMP reachability check before the info request
	CacheSeconds int  `yaml:"cacheSeconds" env:"CACHE_SECONDS"` // how long a probe result is reused
	RatePerSec   int  `yaml:"ratePerSec" env:"RATE_PER_SEC"`    // info requests per second, 0 = unlimited
}

// ProgramConfig holds runtime program configuration (strict validation, selected mode)
type ProgramConfig struct {
	Mode             Mode `yaml:"-"`
	StrictValidation bool `yaml:"strictValidation"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log              string
	UseConfigPath    string
	UseMode          string
	UseCallbackPort  int
	UsePeerBaseURL   string
	UseStrict        bool
	SkipNotify       bool
	SkipServer       bool // do not start the callback server (web/native responses will never arrive)
	Link             string
	Quote            string
	Hashtag          string
	Photos           []string // local image files, read into memory
	PhotoURLs        []string
	Videos           []string // local video files, shared as raw bytes
	VideoURL         string
	EffectID         string
	SurfaceID        string
	WaitSeconds      int // how long to wait for the outcome after Show
}
