package errors

// ErrorResponse is the envelope every failed API call returns, from a
// rejected pricing request to a missing job. Success is always false;
// it exists so clients can branch on one field across all endpoints.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the two audiences of an error separately. Display
// is assembled from the hint chain and is safe to show a dispatcher or
// client; InternalError is the raw error chain for operators. Details
// holds structured context attached via WithReportableDetails, such as
// the offending rule id or quantity.
type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}
