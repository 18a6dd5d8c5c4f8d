package config

import (
	"flag"
)

// parses CLI flags for the server
func ParseServerFlags(args []string) Flags {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	policy := fs.String("policy", "", "exception policy: verbose or terse (overrides EXCEPTION_POLICY)")
	port := fs.String("port", "", "port to listen on (overrides PORT)")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Policy: *policy, Port: *port}
}
