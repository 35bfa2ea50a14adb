package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

func TestPeerAgainstInfoEndpoint(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != tool.PeerInfoPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits++
		_, _ = w.Write([]byte(`{"alias":"peer","version":"1","schemes":["sharepeer","SharePeer-Ext"]}`))
	}))
	defer server.Close()

	p := NewPeer(server.URL, types.ProbeConfig{CacheSeconds: 60})
	if !p.IsPeerAppInstalled() {
		t.Fatal("expected the peer app to be detected")
	}
	if !p.CanOpenURL("sharepeer-ext") || !p.CanOpenURL("sharepeer://") {
		t.Error("registered schemes should be openable")
	}
	if p.CanOpenURL("other") {
		t.Error("unregistered schemes should not be openable")
	}
	if hits != 1 {
		t.Errorf("expected a single cached info request, got %d", hits)
	}

	p.Invalidate()
	p.IsPeerAppInstalled()
	if hits != 2 {
		t.Errorf("invalidate should force a new request, got %d", hits)
	}
}

func TestPeerNotInstalled(t *testing.T) {
	p := NewPeer("http://peer", types.ProbeConfig{})
	p.Fetch = func(context.Context, string) (*types.PeerInfo, error) {
		return nil, errors.New("connection refused")
	}
	if p.IsPeerAppInstalled() {
		t.Error("unreachable peer app should not count as installed")
	}
	if !p.CanOpenURL("https") {
		t.Error("web schemes are always openable")
	}
	if p.CanOpenURL("") || p.CanOpenURL("sharepeer") {
		t.Error("peer schemes need the peer app")
	}
}

func TestPeerRateLimit(t *testing.T) {
	calls := 0
	p := NewPeer("http://peer", types.ProbeConfig{RatePerSec: 1})
	p.Fetch = func(context.Context, string) (*types.PeerInfo, error) {
		calls++
		return &types.PeerInfo{Alias: "peer"}, nil
	}
	if !p.IsPeerAppInstalled() {
		t.Fatal("expected the peer app")
	}
	p.Invalidate()
	// the limiter's single token is spent, so the last result is reused
	if !p.IsPeerAppInstalled() {
		t.Error("throttled probe should reuse the last answer")
	}
	if calls != 1 {
		t.Errorf("expected one fetch, got %d", calls)
	}
}

func TestPeerPingGate(t *testing.T) {
	fetched := false
	p := NewPeer("http://192.0.2.1:53318", types.ProbeConfig{UsePing: true})
	p.Ping = func(host string) bool {
		if host != "192.0.2.1" {
			t.Errorf("unexpected ping host %s", host)
		}
		return false
	}
	p.Fetch = func(context.Context, string) (*types.PeerInfo, error) {
		fetched = true
		return &types.PeerInfo{}, nil
	}
	if p.IsPeerAppInstalled() {
		t.Error("unreachable host should not be installed")
	}
	if fetched {
		t.Error("info must not be fetched when ping fails")
	}
}
