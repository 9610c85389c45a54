package handler

import "net/http"

const (
	msgMethodNotAllowed = "Method not allowed"
	msgMissingEmail     = "Missing email"
	msgUserNotFound     = "User not found"
	msgServerError      = "Server error"
	msgAnalyticsFailed  = "Could not fetch analytics"
	msgInvalidBody      = "invalid request body"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// Reply is what an Endpoint produces, independent of the transport serving it.
type Reply struct {
	Status int
	// Allow is sent as the Allow header when set.
	Allow string
	Body  any
}

func ok(body any) Reply {
	return Reply{Status: http.StatusOK, Body: body}
}

func errorReply(status int, message string) Reply {
	return Reply{Status: status, Body: NewErrorResponse(message)}
}

func methodNotAllowed(allow string) Reply {
	return Reply{Status: http.StatusMethodNotAllowed, Allow: allow, Body: NewErrorResponse(msgMethodNotAllowed)}
}
