package bridge

import (
	"maps"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/types"
)

const (
	gestureCancel = "cancel"

	// errorCodeUserCancelled is what the web flows report when the user backs out.
	errorCodeUserCancelled = 4201
)

// ResponseFromBody converts a peer callback body into a bridge response.
func ResponseFromBody(body *types.BridgeResponseBody) *types.BridgeResponse {
	resp := &types.BridgeResponse{
		ActionID: body.ActionID,
		Params:   map[string]any{},
	}
	maps.Copy(resp.Params, body.Params)
	if body.CompletionGesture != "" {
		resp.Params["completionGesture"] = body.CompletionGesture
	}
	if body.PostID != "" {
		resp.Params["postId"] = body.PostID
	}
	resp.Cancelled = body.CompletionGesture == gestureCancel
	if body.ErrorCode == errorCodeUserCancelled {
		resp.Cancelled = true
		return resp
	}
	if body.ErrorCode != 0 || body.ErrorMessage != "" {
		resp.ErrorCode = body.ErrorCode
		msg := body.ErrorMessage
		if msg == "" {
			msg = "peer reported error " + strconv.Itoa(body.ErrorCode)
		}
		resp.Error = errors.New(msg)
	}
	return resp
}

// ResponseFromQuery converts the browser redirect query into a bridge
// response. Single-valued keys become strings.
func ResponseFromQuery(actionID string, query url.Values) *types.BridgeResponse {
	body := &types.BridgeResponseBody{
		ActionID:          actionID,
		CompletionGesture: query.Get("completionGesture"),
		PostID:            query.Get("post_id"),
		ErrorMessage:      query.Get("error_message"),
		Params:            map[string]any{},
	}
	if body.PostID == "" {
		body.PostID = query.Get("postId")
	}
	if code, err := strconv.Atoi(query.Get("error_code")); err == nil {
		body.ErrorCode = code
	}
	for key, values := range query {
		switch key {
		case "completionGesture", "post_id", "postId", "error_code", "error_message":
			continue
		}
		if len(values) == 1 {
			body.Params[key] = values[0]
		} else {
			body.Params[key] = values
		}
	}
	return ResponseFromBody(body)
}
