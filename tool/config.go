package tool

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/moyoez/sharekit/types"
)

const EnvPrefix = "SHAREKIT_"

var (
	ConfigPath           = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig        types.AppConfig
	ProgramCurrentConfig types.ProgramConfig
)

func init() {
	ProgramCurrentConfig = DefaultProgramConfig()
}

func SetProgramConfigStatus(mode types.Mode, strict bool) {
	ProgramCurrentConfig.Mode = mode
	ProgramCurrentConfig.StrictValidation = strict
}

func GetProgramConfigStatus() types.ProgramConfig {
	return ProgramCurrentConfig
}

// this save to memory , no file provided.
func DefaultProgramConfig() types.ProgramConfig {
	return types.ProgramConfig{
		Mode:             types.ModeAutomatic,
		StrictValidation: false,
	}
}

func DefaultConfig() types.AppConfig {
	return types.AppConfig{
		AppID:                "",
		PeerBaseURL:          "http://127.0.0.1:53318",
		PeerScheme:           "sharepeer",
		ShareExtensionScheme: "sharepeer-ext",
		WebBaseURL:           "https://share.example.com",
		BridgeVersion:        "20170417",
		CallbackPort:         53319,
		CallbackPublicURL:    "",
		TempDir:              os.TempDir(),
		Remote: types.RemoteFlags{
			DefaultShareMode:   "",
			PreferNativeDialog: true,
			UseInAppBrowser:    false,
		},
		Probe: types.ProbeConfig{
			UsePing:      false,
			CacheSeconds: 30,
			RatePerSec:   2,
		},
	}
}

// LoadConfig reads the yaml config at path (writing defaults when it does not
// exist yet) and then overlays SHAREKIT_* environment variables.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := DefaultConfig()

	info, err := os.Stat(path)
	switch {
	case err != nil && os.IsNotExist(err):
		if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
			return cfg, errors.Wrap(writeErr, "config file not found, and failed to generate default config")
		}
		DefaultLogger.Infof("Created new config file at %s", path)
	case err != nil:
		return cfg, errors.Wrap(err, "failed to read config file")
	case info.IsDir():
		return cfg, errors.Errorf("config file path is a directory: %s", path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(err, "failed to parse config file")
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}

	if cfg.CallbackPublicURL == "" {
		cfg.CallbackPublicURL = BuildLocalCallbackBase(cfg.CallbackPort)
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeDefaultConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, data, 0o644))
}
