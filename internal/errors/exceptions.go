package errors

import (
	"net/http"
	"strings"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Call c.Error(err) and return; the exception filter writes the response
//   - Return an HTTPException (NewBadRequestException, ...) when the handler
//     already knows the exact response it wants; the filter passes it through
//   - Never write an error body and record the error for the same request
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Tag domain errors with NewTagged/WrapTagged so the filter can route them
//   - Do not log errors in non-handler code (avoid double logging)

// TaggedError is a domain error carrying an explicit type tag.
type TaggedError struct {
	tag     string
	message string
	cause   error
}

// creates a domain error identified by tag
func NewTagged(tag, message string) *TaggedError {
	return &TaggedError{tag: tag, message: message}
}

// tags an existing error, keeping its message and chain
func WrapTagged(tag string, cause error) *TaggedError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}

	return &TaggedError{tag: tag, message: msg, cause: cause}
}

func (e *TaggedError) Error() string   { return e.message }
func (e *TaggedError) TypeTag() string { return e.tag }
func (e *TaggedError) Unwrap() error   { return e.cause }

// reports whether a tagged error in err's chain carries tag
func HasTag(err error, tag string) bool {
	return Resolve(err).TypeTag == tag
}

// ExceptionBody is the default JSON shape of an HTTPException.
type ExceptionBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

// HTTPException is an error that already knows its HTTP response. The filter
// does not remap it; default handling writes Status and Response as-is.
type HTTPException struct {
	Status   int
	Response any
	name     string
	message  string
}

// creates an exception with an arbitrary status and response body
func NewHTTPException(status int, response any) *HTTPException {
	msg := http.StatusText(status)
	if s, ok := response.(string); ok {
		msg = s
		response = ExceptionBody{StatusCode: status, Message: s}
	}

	return &HTTPException{
		Status:   status,
		Response: response,
		name:     "HttpException",
		message:  msg,
	}
}

func newException(status int, message string) *HTTPException {
	label := http.StatusText(status)
	if message == "" {
		message = label
	}

	return &HTTPException{
		Status: status,
		Response: ExceptionBody{
			StatusCode: status,
			Message:    message,
			Error:      label,
		},
		name:    exceptionName(label),
		message: message,
	}
}

// "Not Found" -> "NotFoundException"
func exceptionName(label string) string {
	return strings.ReplaceAll(label, " ", "") + "Exception"
}

// returns a 400 bad request exception
func NewBadRequestException(message string) *HTTPException {
	return newException(http.StatusBadRequest, message)
}

// returns a 401 unauthorized exception
func NewUnauthorizedException(message string) *HTTPException {
	return newException(http.StatusUnauthorized, message)
}

// returns a 403 forbidden exception
func NewForbiddenException(message string) *HTTPException {
	return newException(http.StatusForbidden, message)
}

// returns a 404 not found exception
func NewNotFoundException(message string) *HTTPException {
	return newException(http.StatusNotFound, message)
}

// returns a 409 conflict exception
func NewConflictException(message string) *HTTPException {
	return newException(http.StatusConflict, message)
}

// returns a 429 too many requests exception
func NewTooManyRequestsException(message string) *HTTPException {
	return newException(http.StatusTooManyRequests, message)
}

// returns a 500 internal server error exception
func NewInternalServerErrorException(message string) *HTTPException {
	return newException(http.StatusInternalServerError, message)
}

func (e *HTTPException) Error() string   { return e.message }
func (e *HTTPException) TypeTag() string { return e.name }
