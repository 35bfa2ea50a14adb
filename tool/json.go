package tool

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// FlattenParams renders dialog params as query values. Strings are kept as is,
// everything else is JSON-encoded.
func FlattenParams(params map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case fmt.Stringer:
			out[k] = val.String()
		default:
			data, err := sonic.Marshal(val)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to encode param %q", k)
			}
			out[k] = BytesToString(data)
		}
	}
	return out, nil
}

// JSONString encodes v with sonic, returning "" on failure.
func JSONString(v any) string {
	data, err := sonic.Marshal(v)
	if err != nil {
		DefaultLogger.Debugf("Failed to encode %T: %v", v, err)
		return ""
	}
	return BytesToString(data)
}

func BytesToString(b []byte) string {
	return string(b)
}
