package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const jsonDetailPrefix = "__json__:"

// NewErrorResponse builds the client-facing error envelope. Hints become
// the display message; reportable details are decoded back into a map.
func NewErrorResponse(err error) ErrorResponse {
	detail := ErrorDetail{
		Display:       "An unexpected error occurred",
		InternalError: err.Error(),
	}

	if hints := errors.GetAllHints(err); len(hints) > 0 {
		detail.Display = strings.Join(hints, "; ")
	}

	for _, d := range errors.GetAllSafeDetails(err) {
		for _, s := range d.SafeDetails {
			if !strings.HasPrefix(s, jsonDetailPrefix) {
				continue
			}
			var decoded map[string]any
			if jsonErr := json.Unmarshal([]byte(strings.TrimPrefix(s, jsonDetailPrefix)), &decoded); jsonErr != nil {
				continue
			}
			if detail.Details == nil {
				detail.Details = make(map[string]any)
			}
			for k, v := range decoded {
				detail.Details[k] = v
			}
		}
	}

	return ErrorResponse{Success: false, Error: detail}
}
