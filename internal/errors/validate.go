package errors

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (36 characters)
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// validates a UUID string format
func IsValidUUID(id string) bool {
	if id == "" {
		return false
	}

	return uuidRegex.MatchString(strings.ToLower(id))
}

// reads a UUID parameter from the request path. A missing parameter is a bad
// request; a malformed one cannot name an existing resource, so it is a 404.
func PathUUID(c *gin.Context, paramName, resource string) (string, error) {
	id := c.Param(paramName)

	if id == "" {
		return "", NewBadRequestException("missing " + paramName)
	}

	if !IsValidUUID(id) {
		return "", NewNotFoundException(resource + " not found")
	}

	return id, nil
}
