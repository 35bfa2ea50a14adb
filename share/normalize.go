package share

import (
	"fmt"
	"strconv"

	"github.com/moyoez/sharekit/types"
)

const (
	completionGestureKey    = "completionGesture"
	completionGestureCancel = "cancel"
	webPostIDKey            = "post_id"
	resultPostIDKey         = "postId"
	webErrorCodeKey         = "error_code"
	webErrorMessageKey      = "error_message"
)

// normalizeResponse folds a channel response into one outcome: an error wins
// over a cancellation, a cancellation wins over completion. Not every channel
// reports cancellation, so a response with neither counts as completed.
func normalizeResponse(params map[string]any, err error, cancelled bool) types.Outcome {
	if err != nil {
		return types.Failed(err)
	}
	if cancelled || stringParam(params, completionGestureKey) == completionGestureCancel {
		return types.Cancelled()
	}
	results := map[string]any{}
	if postID := stringParam(params, webPostIDKey); postID != "" {
		results[resultPostIDKey] = postID
	} else if postID := stringParam(params, resultPostIDKey); postID != "" {
		results[resultPostIDKey] = postID
	}
	return types.Completed(results)
}

func normalizeBridgeResponse(resp *types.BridgeResponse) types.Outcome {
	if resp == nil {
		return types.Failed(&RemoteError{Message: "empty bridge response"})
	}
	var err error
	switch {
	case resp.ErrorCode != 0:
		err = &RemoteError{Code: resp.ErrorCode, Err: resp.Error}
	case resp.Error != nil:
		err = &RemoteError{Err: resp.Error}
	}
	return normalizeResponse(resp.Params, err, resp.Cancelled)
}

// normalizeWebDialogResults handles the web dialog's error_code convention:
// 4201 is a user cancel, any other non-zero code a failure.
func normalizeWebDialogResults(results map[string]any) types.Outcome {
	code := intParam(results, webErrorCodeKey)
	switch {
	case code == ErrCodeWebDialogCancelled:
		return types.Cancelled()
	case code != 0:
		return types.Failed(&RemoteError{Code: code, Message: stringParam(results, webErrorMessageKey)})
	default:
		return normalizeResponse(results, nil, false)
	}
}

func stringParam(params map[string]any, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func intParam(params map[string]any, key string) int {
	switch val := params[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
