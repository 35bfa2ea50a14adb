package transfer

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

const (
	StatusAccepted              = 202 // Accepted, the response arrives on the callback route
	StatusInvalidBody           = 400 // Invalid body
	StatusRejected              = 403 // Rejected by the user or the peer
	StatusTooManyRequests       = 429 // Too many requests
	StatusAppVersionUnsupported = 426 // Peer app is too old for the method
	StatusUnknownPeerError      = 500 // Unknown error by peer
)

// StatusError is a non-success answer from the peer app.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Code)
	}
	return e.Message
}

// StatusCode extracts the peer status code from err, or 0 when err did not
// come from a peer answer.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

// SendBridgeRequest hands a native bridge request to the peer app.
// A nil body with a nil error means the peer accepted the request and will
// answer on the request's redirect URI.
func SendBridgeRequest(ctx context.Context, peerBaseURL string, request *types.BridgeRequest) (*types.BridgeResponseBody, error) {
	if request == nil {
		return nil, errors.New("invalid parameters: request must not be nil")
	}

	url, err := tool.BuildPeerURL(peerBaseURL, tool.PeerBridgePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build bridge URL")
	}

	payload, err := sonic.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal bridge request")
	}

	req, err := tool.NewJSONRequest(http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bridge request")
	}
	resp, err := tool.GetHttpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "bridge request cancelled")
		}
		return nil, errors.Wrap(err, "failed to send bridge request")
	}
	defer tool.CloseBody(resp.Body)

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		tool.DefaultLogger.Warnf("Failed to read bridge response body: %v", readErr)
	} else if len(body) > 0 {
		tool.DefaultLogger.Debugf("Bridge response: %s", tool.BytesToString(body))
	}

	// check status code
	switch resp.StatusCode {
	case http.StatusOK:
		if len(body) == 0 {
			return nil, errors.New("bridge response body is empty")
		}
		var response types.BridgeResponseBody
		if err := sonic.Unmarshal(body, &response); err != nil {
			return nil, errors.Wrap(err, "failed to parse bridge response")
		}
		if response.ActionID == "" {
			response.ActionID = request.ActionID
		}
		tool.DefaultLogger.Infof("Bridge request %s answered immediately by %s", request.ActionID, url)
		return &response, nil
	case StatusAccepted, http.StatusNoContent:
		tool.DefaultLogger.Infof("Bridge request %s accepted by %s", request.ActionID, url)
		return nil, nil
	case StatusAppVersionUnsupported:
		return nil, &StatusError{Code: resp.StatusCode, Message: peerErrorMessage(body, "peer app version does not support this request")}
	case StatusInvalidBody:
		return nil, &StatusError{Code: resp.StatusCode, Message: peerErrorMessage(body, "bridge request failed: invalid body")}
	case StatusRejected:
		return nil, &StatusError{Code: resp.StatusCode, Message: peerErrorMessage(body, "bridge request rejected")}
	case StatusTooManyRequests:
		return nil, &StatusError{Code: resp.StatusCode, Message: "bridge request: too many requests"}
	case StatusUnknownPeerError:
		return nil, &StatusError{Code: resp.StatusCode, Message: peerErrorMessage(body, "bridge request: peer error")}
	default:
		return nil, &StatusError{Code: resp.StatusCode, Message: "bridge request failed: " + resp.Status}
	}
}

// peerErrorMessage picks the "error" field of a JSON error body, or fallback.
func peerErrorMessage(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}
	var errorResponse struct {
		Error string `json:"error"`
	}
	if err := sonic.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error != "" {
		return errorResponse.Error
	}
	return fallback
}
