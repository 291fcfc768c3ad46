package model

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDashes   = regexp.MustCompile(`-{2,}`)
)

// SanitizeName normalizes a skill display name into a safe directory name.
// Characters outside [A-Za-z0-9._-] are replaced with hyphens, repeats are
// collapsed, and leading/trailing dots and hyphens are trimmed so the
// result can never form a path-traversal segment. A name that sanitizes
// to nothing falls back to a generated identifier.
func SanitizeName(name string) string {
	s := strings.ToLower(name)
	s = invalidNameChars.ReplaceAllString(s, "-")
	s = repeatedDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	if len(s) > 100 {
		s = strings.Trim(s[:100], "-.")
	}
	if s == "" {
		return fallbackName(name)
	}
	return s
}

// fallbackName derives a stable safe identifier from the original name.
func fallbackName(original string) string {
	sum := sha256.Sum256([]byte(original))
	return fmt.Sprintf("skill-%x", sum[:4])
}
