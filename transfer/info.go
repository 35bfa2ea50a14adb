package transfer

import (
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// FetchPeerInfo asks the peer app which schemes and features it supports.
func FetchPeerInfo(ctx context.Context, peerBaseURL string) (*types.PeerInfo, error) {
	url, err := tool.BuildPeerURL(peerBaseURL, tool.PeerInfoPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build info URL")
	}

	req, err := tool.NewJSONRequest(http.NewRequestWithContext(ctx, http.MethodGet, url, nil))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create info request")
	}

	resp, err := tool.GetProbeHttpClient().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send info request to %s", url)
	}
	body, readErr := io.ReadAll(resp.Body)
	tool.CloseBody(resp.Body)

	if readErr != nil {
		return nil, errors.Wrap(readErr, "failed to read info response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Message: "info request failed with status: " + resp.Status}
	}

	var info types.PeerInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return nil, errors.Wrap(err, "failed to parse info response")
	}

	tool.DefaultLogger.Debugf("FetchPeerInfo: got peer info from %s: %s (version %s)", url, info.Alias, info.Version)
	return &info, nil
}
