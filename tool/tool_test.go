package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moyoez/sharekit/types"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Default config should be written: %v", err)
	}
	if cfg.CallbackPort != 53319 || cfg.PeerScheme != "sharepeer" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.CallbackPublicURL != "http://127.0.0.1:53319/api/share/v1" {
		t.Errorf("CallbackPublicURL = %q", cfg.CallbackPublicURL)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "appId: \"from-file\"\ncallbackPort: 6000\nremote:\n  defaultShareMode: share_sheet\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHAREKIT_APP_ID", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.AppID != "from-env" {
		t.Errorf("Environment should override the file, got %q", cfg.AppID)
	}
	if cfg.CallbackPort != 6000 {
		t.Errorf("CallbackPort = %d, want 6000", cfg.CallbackPort)
	}
	if !NewRemoteConfig(cfg.Remote).DefaultShareModeIsComposeSheet() {
		t.Error("Remote default share mode should come from the file")
	}
	if cfg.WebBaseURL != "https://share.example.com" {
		t.Errorf("Unset keys should keep defaults, got %q", cfg.WebBaseURL)
	}
}

func TestLoadConfigDirectory(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("Expected an error for a directory path")
	}
}

func TestProgramConfigStatus(t *testing.T) {
	defer SetProgramConfigStatus(types.ModeAutomatic, false)
	SetProgramConfigStatus(types.ModeWeb, true)
	got := GetProgramConfigStatus()
	if got.Mode != types.ModeWeb || !got.StrictValidation {
		t.Errorf("Unexpected program config: %+v", got)
	}
}

func TestURLBuilders(t *testing.T) {
	if got := BuildBridgeCallbackURL("http://127.0.0.1:1/api/share/v1/", "a b"); got != "http://127.0.0.1:1/api/share/v1/bridge/a%20b" {
		t.Errorf("BuildBridgeCallbackURL() = %q", got)
	}
	if got := BuildDialogCallbackURL("http://h/cb", "d1"); got != "http://h/cb/dialog/d1" {
		t.Errorf("BuildDialogCallbackURL() = %q", got)
	}

	got, err := BuildPeerURL("http://127.0.0.1:53318/", PeerInfoPath)
	if err != nil || got != "http://127.0.0.1:53318/api/peer/v1/info" {
		t.Errorf("BuildPeerURL() = %q, %v", got, err)
	}
	if _, err := BuildPeerURL("127.0.0.1", PeerInfoPath); err == nil {
		t.Error("BuildPeerURL should reject a base without scheme")
	}

	dialog, err := BuildWebDialogURL("https://share.example.com", "feed", map[string]string{"link": "https://a.b/?x=1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dialog, "https://share.example.com/dialog/feed?") || !strings.Contains(dialog, "link=https%3A%2F%2Fa.b%2F%3Fx%3D1") {
		t.Errorf("BuildWebDialogURL() = %q", dialog)
	}

	if !IsNetworkURL("HTTPS://example.com/x") || IsNetworkURL("file:///tmp/x") || IsNetworkURL("/relative") {
		t.Error("IsNetworkURL misclassified a URL")
	}
	if FileURL("/tmp/a b.mp4") != "file:///tmp/a%20b.mp4" {
		t.Errorf("FileURL() = %q", FileURL("/tmp/a b.mp4"))
	}
}

func TestFlattenParams(t *testing.T) {
	out, err := FlattenParams(map[string]any{
		"href":  "https://example.com",
		"skip":  nil,
		"count": 2,
		"tags":  []string{"a"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["skip"]; ok {
		t.Error("nil params should be dropped")
	}
	if out["href"] != "https://example.com" || out["count"] != "2" || out["tags"] != `["a"]` {
		t.Errorf("Unexpected flattened params: %v", out)
	}
}

func TestTokenStoreFromConfig(t *testing.T) {
	if NewTokenStoreFromConfig(&types.AppConfig{}).CurrentAccessToken() != nil {
		t.Error("No token should be loaded without configuration")
	}

	expires := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	store := NewTokenStoreFromConfig(&types.AppConfig{AccessToken: "tok", AccessTokenExpiresAt: expires})
	if token := store.CurrentAccessToken(); !token.Valid() {
		t.Errorf("Expected a valid token, got %+v", token)
	}

	store = NewTokenStoreFromConfig(&types.AppConfig{AccessToken: "tok", AccessTokenExpiresAt: "tomorrow"})
	if token := store.CurrentAccessToken(); token == nil || !token.ExpiresAt.IsZero() {
		t.Errorf("Malformed expiry should be ignored, got %+v", token)
	}

	store.SetAccessToken(&types.AccessToken{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	if store.CurrentAccessToken().Valid() {
		t.Error("Expired token should be invalid")
	}
}

func TestGenerateShortID(t *testing.T) {
	a, b := GenerateShortID(), GenerateShortID()
	if len(a) != 12 || a == b {
		t.Errorf("Unexpected short ids %q %q", a, b)
	}
}
