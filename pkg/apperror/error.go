package apperror

// ErrorResponse is the standardized HTTP error payload. Error and Details mirror the
// shape the quiz frontend already parses; ErrorCode is the stable machine code.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	ErrorCode string `json:"error_code"`
}

type FiberSuccessMessage struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	TrackingID string `json:"tracking_id"`
	Data       any    `json:"data"`
}
