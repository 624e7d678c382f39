// Package envcfg reads tool configuration from process environment
// variables. Tools fail early with a uniform message when a required
// secret is missing.
package envcfg

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Require returns the value of the named environment variable, or an error
// with the canonical missing-secret message when it is unset or blank.
func Require(name string) (string, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", errors.Newf("Environment Variable %s not present. Did you set it in your project's secrets?", name)
	}
	return v, nil
}

// Lookup returns the value of the named environment variable, or the
// fallback when it is unset or blank.
func Lookup(name, fallback string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	return v
}
