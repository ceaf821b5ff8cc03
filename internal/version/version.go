// Package version exposes the wukong release version.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the current version with surrounding whitespace trimmed.
func Get() string {
	return strings.TrimSpace(versionContent)
}
