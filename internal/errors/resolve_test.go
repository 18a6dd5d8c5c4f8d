package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type quotaError struct{}

func (quotaError) Error() string   { return "quota exhausted" }
func (quotaError) TypeTag() string { return "MaximumNumberOfGrabbedTasksExceededError" }

// a typed domain error that relies on its Go type name for routing
type EntityNotFoundError struct{ ID int }

func (e *EntityNotFoundError) Error() string { return fmt.Sprintf("entity %d not found", e.ID) }

func TestResolve(t *testing.T) {
	uniqueViolation := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "23505",
		Message:  `duplicate key value violates unique constraint "users_email_key"`,
	}

	tests := []struct {
		name    string
		err     error
		wantTag string
	}{
		{"tagged", NewTagged(TagPermissionDenied, "no"), TagPermissionDenied},
		{"wrapped tagged", fmt.Errorf("delete user: %w", NewTagged(TagEntityNotFound, "gone")), TagEntityNotFound},
		{"custom tagger", quotaError{}, TagMaximumGrabbedTasksExceeded},
		{"http exception", NewNotFoundException("Cannot GET /x"), "NotFoundException"},
		{"generic http exception", NewHTTPException(418, "teapot"), "HttpException"},
		{"pg error", uniqueViolation, TagQueryFailed},
		{"wrapped pg error", fmt.Errorf("create user: %w", uniqueViolation), TagQueryFailed},
		{"no rows", fmt.Errorf("find user: %w", pgx.ErrNoRows), TagEntityNotFound},
		{"jwt expired", fmt.Errorf("%w: %w", jwt.ErrTokenInvalidClaims, jwt.ErrTokenExpired), TagJSONWebToken},
		{"jwt malformed", jwt.ErrTokenMalformed, TagJSONWebToken},
		{"path error", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, "PathError"},
		{"plain error", errors.New("boom"), "errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.err)

			assert.Equal(t, tt.wantTag, r.TypeTag)
			assert.Equal(t, tt.err.Error(), r.Message)
		})
	}
}

func TestResolve_PgUniqueViolationIsConflict(t *testing.T) {
	err := fmt.Errorf("create user: %w", &pgconn.PgError{
		Severity: "ERROR",
		Code:     "23505",
		Message:  `duplicate key value violates unique constraint "users_email_key"`,
	})

	assert.Equal(t, OutcomeConflict, NewClassifier().Classify(Resolve(err)))
}

func TestResolve_WrappedTypedError(t *testing.T) {
	bare := &EntityNotFoundError{ID: 7}
	c := NewClassifier()

	tests := []struct {
		name string
		err  error
	}{
		{"bare", bare},
		{"wrapped once", fmt.Errorf("find user: %w", bare)},
		{"wrapped twice", fmt.Errorf("handler: %w", fmt.Errorf("find user: %w", bare))},
		{"multi wrap", fmt.Errorf("find user: %w (%w)", bare, errors.New("cache miss"))},
		{"joined", errors.Join(bare, errors.New("cleanup failed"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.err)

			assert.Equal(t, "EntityNotFoundError", r.TypeTag)
			assert.Equal(t, tt.err.Error(), r.Message)
			assert.Equal(t, OutcomeNotFound, c.Classify(r))
		})
	}
}

func TestResolve_WrappedPlainErrorIsStillInternal(t *testing.T) {
	err := fmt.Errorf("dial: %w", errors.New("connection refused"))

	r := Resolve(err)

	assert.Equal(t, "errorString", r.TypeTag)
	assert.Equal(t, OutcomeInternalError, NewClassifier().Classify(r))
}

func TestResolve_Nil(t *testing.T) {
	r := Resolve(nil)

	assert.Equal(t, "Error", r.TypeTag)
	assert.Equal(t, OutcomeInternalError, NewClassifier().Classify(r))
}

func TestWrapTagged(t *testing.T) {
	cause := errors.New("token used twice")
	err := WrapTagged(TagJSONWebToken, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "token used twice", err.Error())
	assert.True(t, HasTag(fmt.Errorf("auth: %w", err), TagJSONWebToken))
	assert.False(t, HasTag(cause, TagJSONWebToken))
}
