package errors

import (
	"encoding/json"
	"net/http"
)

// the closed set of terminal classification results
type Outcome int

const (
	OutcomeInternalError Outcome = iota
	OutcomeNotFound
	OutcomeBadRequest
	OutcomeForbidden
	OutcomeConflict
	OutcomePassthrough
)

// category labels written into the envelope's "error" field
const (
	LabelNotFound      = "Not found"
	LabelBadRequest    = "Bad request"
	LabelForbidden     = "Forbidden"
	LabelConflict      = "Conflict"
	LabelInternalError = "Internal Server Error"
)

// returns the HTTP status for the outcome, 0 for passthrough
func (o Outcome) StatusCode() int {
	switch o {
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeBadRequest:
		return http.StatusBadRequest
	case OutcomeForbidden:
		return http.StatusForbidden
	case OutcomeConflict:
		return http.StatusConflict
	case OutcomePassthrough:
		return 0
	default:
		return http.StatusInternalServerError
	}
}

// returns the human-readable category label for the outcome
func (o Outcome) Label() string {
	switch o {
	case OutcomeNotFound:
		return LabelNotFound
	case OutcomeBadRequest:
		return LabelBadRequest
	case OutcomeForbidden:
		return LabelForbidden
	case OutcomeConflict:
		return LabelConflict
	case OutcomePassthrough:
		return ""
	default:
		return LabelInternalError
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeConflict:
		return "conflict"
	case OutcomePassthrough:
		return "passthrough"
	default:
		return "internal_error"
	}
}

// Raised is the classifier's view of an error: a stable type tag used for
// matching and the free-text message. It is built per request by Resolve and
// never retained.
type Raised struct {
	TypeTag string
	Message string
}

// Envelope is the JSON error body returned to clients.
//
// The tags describe the verbose shape. MarshalJSON writes message and name
// only when Detailed is set, and then always (even if empty).
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Name       string `json:"name"`
	Detailed   bool   `json:"-"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	body := struct {
		StatusCode int     `json:"statusCode"`
		Error      string  `json:"error"`
		Message    *string `json:"message,omitempty"`
		Name       *string `json:"name,omitempty"`
	}{
		StatusCode: e.StatusCode,
		Error:      e.Error,
	}

	if e.Detailed {
		body.Message = &e.Message
		body.Name = &e.Name
	}

	return json.Marshal(body)
}

// Decision is the result of running an error through the filter.
type Decision struct {
	Raised   Raised
	Outcome  Outcome
	Envelope Envelope
}

// reports whether the original error should be forwarded to default handling
func (d Decision) Passthrough() bool {
	return d.Outcome == OutcomePassthrough
}
