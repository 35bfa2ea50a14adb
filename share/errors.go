package share

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotConfigured             = errors.New("share dialog is not configured")
	ErrMissingContent            = errors.New("share content is missing")
	ErrUnsupportedContentKind    = errors.New("unsupported share content kind")
	ErrChannelUnavailable        = errors.New("share channel is not available")
	ErrAmbiguousValidation       = errors.New("share channel support could not be determined")
	ErrRequestConstructionFailed = errors.New("failed to construct bridge request")
)

// Remote error codes understood by the dialog.
const (
	ErrCodeAppVersionUnsupported = 426
	ErrCodeWebDialogCancelled    = 4201
)

// ValidationError reports a structural problem with the shared content.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return errors.WithStack(&ValidationError{Field: field, Reason: reason})
}

// RemoteError wraps a failure reported after a channel was initiated.
type RemoteError struct {
	Code    int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("remote failure %d: %s: %v", e.Code, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("remote failure %d: %v", e.Code, e.Err)
	default:
		return fmt.Sprintf("remote failure %d: %s", e.Code, e.Message)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsAppVersionUnsupported reports whether err says the peer app is too old
// for the requested feature.
func IsAppVersionUnsupported(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code == ErrCodeAppVersionUnsupported
}
