package dto

// ReviewRequest is the body accepted by the approve and reject endpoints.
type ReviewRequest struct {
	RequestID string `json:"request_id" binding:"required,uuid"`
}

// MessageResponse is the success body of the approval endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body shared by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
