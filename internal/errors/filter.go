package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"codeberg.org/algopatterns/exceptionfilter/internal/logger"
	"github.com/gin-gonic/gin"
)

const verboseWarning = "error responses will include the error message and type name; " +
	"install the terse exception filter where security policy requires them to be left out"

// Filter turns unhandled request errors into HTTP error responses. The
// classifier and policy are fixed at construction and never mutated, so one
// Filter serves any number of concurrent requests.
type Filter struct {
	classifier *Classifier
	policy     Policy
	log        *slog.Logger
}

type Option func(*Filter)

// sets the logger used for the startup warning and server faults
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.log = l
		}
	}
}

// replaces the default classifier
func WithClassifier(c *Classifier) Option {
	return func(f *Filter) {
		if c != nil {
			f.classifier = c
		}
	}
}

// creates a filter for policy. A verbose filter logs a warning once, here.
func NewFilter(policy Policy, opts ...Option) *Filter {
	f := &Filter{
		classifier: NewClassifier(),
		policy:     policy,
		log:        logger.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if policy == PolicyVerbose {
		f.log.Warn(verboseWarning, "component", "exception_filter", "policy", policy.String())
	}

	return f
}

func (f *Filter) Policy() Policy {
	return f.policy
}

// classifies err and builds its envelope without touching any transport.
// Hosting frameworks other than gin can wire the filter through this.
func (f *Filter) Decide(err error) Decision {
	r := Resolve(err)
	outcome := f.classifier.Classify(r)
	env, _ := Build(outcome, r, f.policy)

	return Decision{Raised: r, Outcome: outcome, Envelope: env}
}

// writes the error response for err and aborts the request
func (f *Filter) Catch(c *gin.Context, err error) {
	if c.Writer.Written() {
		f.log.Warn("response already written, dropping error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		return
	}

	d := f.Decide(err)
	if d.Passthrough() {
		f.handleDefault(c, err)
		return
	}

	if d.Outcome == OutcomeInternalError {
		f.logFault(c, err, d.Raised.TypeTag)
	}

	c.AbortWithStatusJSON(d.Envelope.StatusCode, d.Envelope)
}

// default handling for errors that already carry their own HTTP shape
func (f *Filter) handleDefault(c *gin.Context, err error) {
	var ex *HTTPException
	if errors.As(err, &ex) {
		c.AbortWithStatusJSON(ex.Status, ex.Response)
		return
	}

	f.logFault(c, err, Resolve(err).TypeTag)

	c.AbortWithStatusJSON(http.StatusInternalServerError, ExceptionBody{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	})
}

// log full error server-side with context
func (f *Filter) logFault(c *gin.Context, err error, name string) {
	f.log.Error("unhandled error",
		"error", err,
		"name", name,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)
}

// installs the filter: recovers panics and handles the last error recorded
// with c.Error once the rest of the chain has run
func (f *Filter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			f.Catch(c, panicError(rec))
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			f.Catch(c, last.Err)
		}
	}
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}

	return NewTagged("PanicError", fmt.Sprint(rec))
}
