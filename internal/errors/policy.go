package errors

import (
	"fmt"
	"strings"
)

// controls whether diagnostic detail is included in error responses
type Policy int

const (
	// status code and category label only
	PolicyTerse Policy = iota

	// also includes the error message and type name
	PolicyVerbose
)

func (p Policy) String() string {
	if p == PolicyVerbose {
		return "verbose"
	}

	return "terse"
}

// parses a policy name as used by EXCEPTION_POLICY and the -policy flag
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terse", "production", "redacted":
		return PolicyTerse, nil
	case "verbose", "development", "debug":
		return PolicyVerbose, nil
	default:
		return PolicyTerse, fmt.Errorf("unknown exception policy %q (want \"verbose\" or \"terse\")", s)
	}
}

// returns the policy used when none is configured for the given environment
func DefaultPolicy(environment string) Policy {
	if environment == "production" {
		return PolicyTerse
	}

	return PolicyVerbose
}
