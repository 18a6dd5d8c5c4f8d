package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

// serves a single route that fails with handler's error
func serve(t *testing.T, f *Filter, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(f.Middleware())
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	return w
}

func fail(err error) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(err)
	}
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

func TestNewFilter_VerboseWarnsOnce(t *testing.T) {
	log, buf := newTestLogger()

	f := NewFilter(PolicyVerbose, WithLogger(log))

	assert.Equal(t, PolicyVerbose, f.Policy())
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
	assert.Contains(t, buf.String(), "error message and type name")

	// handling requests does not repeat the warning
	serve(t, f, fail(NewTagged(TagEntityNotFound, "gone")))
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
}

func TestNewFilter_TerseIsSilent(t *testing.T) {
	log, buf := newTestLogger()

	NewFilter(PolicyTerse, WithLogger(log))

	assert.Empty(t, buf.String())
}

func TestNewFilter_WithClassifier(t *testing.T) {
	log, _ := newTestLogger()

	f := NewFilter(PolicyTerse,
		WithLogger(log),
		WithClassifier(NewClassifier(WithTags(OutcomeBadRequest, "QuotaExceededError"))),
	)

	w := serve(t, f, fail(NewTagged("QuotaExceededError", "daily quota used")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"statusCode":400,"error":"Bad request"}`, w.Body.String())

	// built-in rules still apply
	w = serve(t, f, fail(NewTagged(TagEntityNotFound, "gone")))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// a nil classifier keeps the default
	plain := NewFilter(PolicyTerse, WithLogger(log), WithClassifier(nil))
	assert.Equal(t, OutcomeInternalError, plain.Decide(NewTagged("QuotaExceededError", "x")).Outcome)
}

func TestNewFilter_WithRulesAppendedToDefaults(t *testing.T) {
	log, _ := newTestLogger()
	rules := append(DefaultRules(), TagRule("gone", OutcomeNotFound, "TombstonedError"))

	f := NewFilter(PolicyTerse, WithLogger(log), WithClassifier(NewClassifier(WithRules(rules...))))

	assert.Equal(t, OutcomeNotFound, f.Decide(NewTagged("TombstonedError", "x")).Outcome)
	assert.Equal(t, OutcomeForbidden, f.Decide(NewTagged(TagPermissionDenied, "no")).Outcome)
	assert.Equal(t, OutcomeConflict, f.Decide(NewTagged(TagQueryFailed, UniqueViolationMarker)).Outcome)
}

func TestDecide(t *testing.T) {
	log, _ := newTestLogger()
	f := NewFilter(PolicyVerbose, WithLogger(log))

	d := f.Decide(NewTagged(TagEntityNotFound, "user 7 missing"))

	assert.False(t, d.Passthrough())
	assert.Equal(t, OutcomeNotFound, d.Outcome)
	assert.Equal(t, Envelope{
		StatusCode: 404,
		Error:      "Not found",
		Message:    "user 7 missing",
		Name:       "EntityNotFoundError",
		Detailed:   true,
	}, d.Envelope)

	d = f.Decide(NewTagged("RandomDomainException", "x"))
	assert.True(t, d.Passthrough())
}

func TestMiddleware_Policies(t *testing.T) {
	pgUnique := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "23505",
		Message:  `duplicate key value violates unique constraint "users_email_key"`,
	}

	tests := []struct {
		name       string
		err        error
		policy     Policy
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found terse",
			err:        NewTagged(TagEntityNotFound, "user 7 missing"),
			policy:     PolicyTerse,
			wantStatus: 404,
			wantBody:   `{"statusCode":404,"error":"Not found"}`,
		},
		{
			name:       "not found verbose",
			err:        NewTagged(TagEntityNotFound, "user 7 missing"),
			policy:     PolicyVerbose,
			wantStatus: 404,
			wantBody:   `{"statusCode":404,"error":"Not found","message":"user 7 missing","name":"EntityNotFoundError"}`,
		},
		{
			name:       "unique violation",
			err:        fmt.Errorf("create user: %w", pgUnique),
			policy:     PolicyTerse,
			wantStatus: 409,
			wantBody:   `{"statusCode":409,"error":"Conflict"}`,
		},
		{
			name:       "permission denied",
			err:        NewTagged(TagPermissionDenied, "no"),
			policy:     PolicyTerse,
			wantStatus: 403,
			wantBody:   `{"statusCode":403,"error":"Forbidden"}`,
		},
		{
			name:       "unknown error terse",
			err:        errors.New("dial tcp 10.0.0.1:5432: connection refused"),
			policy:     PolicyTerse,
			wantStatus: 500,
			wantBody:   `{"statusCode":500,"error":"Internal Server Error"}`,
		},
		{
			name:       "http exception passthrough",
			err:        NewNotFoundException("Cannot GET /x"),
			policy:     PolicyVerbose,
			wantStatus: 404,
			wantBody:   `{"statusCode":404,"message":"Cannot GET /x","error":"Not Found"}`,
		},
		{
			name:       "custom http exception passthrough",
			err:        NewHTTPException(http.StatusTeapot, map[string]any{"reason": "short and stout"}),
			policy:     PolicyTerse,
			wantStatus: 418,
			wantBody:   `{"reason":"short and stout"}`,
		},
		{
			name:       "plain exception passthrough",
			err:        NewTagged("RandomDomainException", "x"),
			policy:     PolicyVerbose,
			wantStatus: 500,
			wantBody:   `{"statusCode":500,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := newTestLogger()
			f := NewFilter(tt.policy, WithLogger(log))

			w := serve(t, f, fail(tt.err))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestMiddleware_LastErrorWins(t *testing.T) {
	log, _ := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	w := serve(t, f, func(c *gin.Context) {
		_ = c.Error(errors.New("first"))
		_ = c.Error(NewTagged(TagLanguageRule, "unsupported language"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad request", body(t, w)["error"])
}

func TestMiddleware_NoErrorLeavesResponseAlone(t *testing.T) {
	log, _ := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	w := serve(t, f, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestMiddleware_AlreadyWritten(t *testing.T) {
	log, buf := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	w := serve(t, f, func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
		_ = c.Error(errors.New("late failure"))
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"queued":true}`, w.Body.String())
	assert.Contains(t, buf.String(), "response already written")
}

func TestMiddleware_RecoversPanics(t *testing.T) {
	log, buf := newTestLogger()
	f := NewFilter(PolicyVerbose, WithLogger(log))

	w := serve(t, f, func(c *gin.Context) {
		panic("nil map write")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"statusCode":500,"error":"Internal Server Error","message":"nil map write","name":"PanicError"}`,
		w.Body.String())
	assert.Contains(t, buf.String(), "unhandled error")
}

func TestMiddleware_RecoversErrorPanics(t *testing.T) {
	log, _ := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	w := serve(t, f, func(c *gin.Context) {
		panic(NewTagged(TagPermissionDenied, "no"))
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"statusCode":403,"error":"Forbidden"}`, w.Body.String())
}

func TestMiddleware_ServerFaultsAreLogged(t *testing.T) {
	log, buf := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	serve(t, f, fail(errors.New("disk on fire")))

	assert.Contains(t, buf.String(), "disk on fire")
	assert.Contains(t, buf.String(), "path=/test")

	// client errors are not
	buf.Reset()
	serve(t, f, fail(NewTagged(TagEntityNotFound, "gone")))
	assert.Empty(t, buf.String())
}

func TestFilter_ConcurrentDecide(t *testing.T) {
	log, _ := newTestLogger()
	f := NewFilter(PolicyTerse, WithLogger(log))

	inputs := []struct {
		err  error
		want Outcome
	}{
		{NewTagged(TagEntityNotFound, "a"), OutcomeNotFound},
		{NewTagged(TagJSONWebToken, "b"), OutcomeBadRequest},
		{NewTagged(TagPermissionDenied, "c"), OutcomeForbidden},
		{NewTagged(TagQueryFailed, UniqueViolationMarker), OutcomeConflict},
		{errors.New("d"), OutcomeInternalError},
		{NewBadRequestException("e"), OutcomePassthrough},
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, in := range inputs {
			in := in
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, in.want, f.Decide(in.err).Outcome)
			}()
		}
	}

	wg.Wait()
}
