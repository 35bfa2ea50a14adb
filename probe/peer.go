package probe

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	probing "github.com/prometheus-community/pro-bing"
	"golang.org/x/time/rate"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/transfer"
	"github.com/moyoez/sharekit/types"
)

var (
	DefaultCacheTTL = 30 * time.Second
	PingTimeout     = time.Second
	webSchemes      = []string{"http", "https"}
)

// peerState is a cached probe result; info is nil when the peer did not answer.
type peerState struct {
	info *types.PeerInfo
}

// Peer answers which share channels the local peer app can take.
// Results are cached and the peer is asked at most RatePerSec times a second.
type Peer struct {
	BaseURL string
	UsePing bool

	Fetch func(ctx context.Context, peerBaseURL string) (*types.PeerInfo, error)
	Ping  func(host string) bool

	limiter *rate.Limiter
	cache   *ttlworker.Cache[string, *peerState]

	mu   sync.Mutex
	last *peerState
}

func NewPeer(baseURL string, cfg types.ProbeConfig) *Peer {
	ttl := DefaultCacheTTL
	if cfg.CacheSeconds > 0 {
		ttl = time.Duration(cfg.CacheSeconds) * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	return &Peer{
		BaseURL: baseURL,
		UsePing: cfg.UsePing,
		Fetch:   transfer.FetchPeerInfo,
		Ping:    PingHost,
		limiter: rate.NewLimiter(limit, 1),
		cache:   ttlworker.NewCache[string, *peerState](ttl),
	}
}

func (p *Peer) IsPeerAppInstalled() bool {
	return p.Info() != nil
}

// CanOpenURL reports whether a URL with scheme can be opened: web schemes
// always, anything else only when the peer app registered it.
func (p *Peer) CanOpenURL(scheme string) bool {
	scheme = strings.ToLower(strings.TrimSuffix(scheme, "://"))
	if scheme == "" {
		return false
	}
	if slices.Contains(webSchemes, scheme) {
		return true
	}
	info := p.Info()
	if info == nil {
		return false
	}
	return slices.ContainsFunc(info.Schemes, func(s string) bool {
		return strings.EqualFold(s, scheme)
	})
}

// Info returns the peer app description, or nil when no peer app answers.
func (p *Peer) Info() *types.PeerInfo {
	if state := p.cache.Get(p.BaseURL); state != nil {
		return state.info
	}
	if !p.limiter.Allow() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.last != nil {
			return p.last.info
		}
		return nil
	}

	state := &peerState{info: p.fetch()}
	p.cache.Set(p.BaseURL, state)
	p.mu.Lock()
	p.last = state
	p.mu.Unlock()
	return state.info
}

// Invalidate drops the cached result so the next call asks the peer again.
func (p *Peer) Invalidate() {
	p.cache.Delete(p.BaseURL)
}

func (p *Peer) fetch() *types.PeerInfo {
	if p.BaseURL == "" || p.Fetch == nil {
		return nil
	}
	if p.UsePing && p.Ping != nil {
		if u, err := url.Parse(p.BaseURL); err == nil && u.Hostname() != "" && !p.Ping(u.Hostname()) {
			tool.DefaultLogger.Debugf("[Probe] peer host %s does not answer ping", u.Hostname())
			return nil
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), tool.GetProbeHttpClient().Timeout)
	defer cancel()
	info, err := p.Fetch(ctx, p.BaseURL)
	if err != nil {
		tool.DefaultLogger.Debugf("[Probe] peer app not reachable at %s: %v", p.BaseURL, err)
		return nil
	}
	tool.DefaultLogger.Debugf("[Probe] peer app %s %s supports %v", info.Alias, info.Version, info.Schemes)
	return info
}

// PingHost sends a single unprivileged ICMP echo to host.
func PingHost(host string) bool {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		tool.DefaultLogger.Debugf("[Probe] failed to create pinger for %s: %v", host, err)
		return false
	}
	pinger.Count = 1
	pinger.Timeout = PingTimeout
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		tool.DefaultLogger.Debugf("[Probe] ping %s failed: %v", host, err)
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
