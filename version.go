package main

import (
	"fmt"
	"strings"
)

// Set with -ldflags "-X main.buildVersion=v1.0.0 -X main.buildCommit=$(git rev-parse HEAD)".
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func versionString() string {
	return fmt.Sprintf("sql2lm %s", formatVersion(buildVersion, buildCommit))
}

// formatVersion returns release tags unchanged and dev builds as dev-<sha>.
func formatVersion(version, commit string) string {
	v := strings.TrimSpace(version)
	if v == "" || v == "dev" {
		if c := shortCommit(commit); c != "" {
			return "dev-" + c
		}
		return "dev"
	}
	return strings.TrimPrefix(v, "refs/tags/")
}

func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	switch {
	case c == "" || c == "unknown":
		return ""
	case len(c) > 7:
		return c[:7]
	default:
		return c
	}
}
