package errors

import (
	"errors"
	"reflect"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// implemented by errors that name their own type tag
type Tagger interface {
	TypeTag() string
}

// token validation failures reported by golang-jwt
var jwtErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenExpired,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrTokenRequiredClaimMissing,
}

// maps a Go error onto the classifier's view of it. The message is always
// err.Error(); the tag comes from the first source that recognizes err.
func Resolve(err error) Raised {
	if err == nil {
		return Raised{TypeTag: "Error"}
	}

	return Raised{TypeTag: typeTag(err), Message: err.Error()}
}

func typeTag(err error) string {
	// explicitly tagged domain errors and HTTP exceptions
	var tagger Tagger
	if errors.As(err, &tagger) && tagger.TypeTag() != "" {
		return tagger.TypeTag()
	}

	// database errors (pgx-specific)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return TagQueryFailed
	}

	// no rows found
	if errors.Is(err, pgx.ErrNoRows) {
		return TagEntityNotFound
	}

	for _, target := range jwtErrors {
		if errors.Is(err, target) {
			return TagJSONWebToken
		}
	}

	return goTypeName(err)
}

// stdlib types that only add context around another error
var stdWrappers = map[string]bool{
	"fmt.wrapError":    true,
	"fmt.wrapErrors":   true,
	"errors.joinError": true,
}

// names the first non-wrapper error in the chain, so fmt.Errorf("...: %w")
// context does not change how a typed domain error is routed.
// *fs.PathError -> "PathError"; unnamed types fall back to "Error"
func goTypeName(err error) string {
	if name := unwrappedTypeName(err); name != "" {
		return name
	}

	return typeName(reflect.TypeOf(err))
}

func unwrappedTypeName(err error) string {
	if err == nil {
		return ""
	}

	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if !stdWrappers[t.PkgPath()+"."+t.Name()] {
		return typeName(t)
	}

	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return unwrappedTypeName(x.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if name := unwrappedTypeName(inner); name != "" {
				return name
			}
		}
	}

	return ""
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if name := t.Name(); name != "" {
		return name
	}

	return "Error"
}
