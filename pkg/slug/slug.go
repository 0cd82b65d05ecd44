package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	canonical = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// maxLen bounds slugs accepted from request paths.
const maxLen = 96

// Generate derives a URL slug from a display name:
// "XX99 Mark II Headphones" becomes "xx99-mark-ii-headphones".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && len(s) <= maxLen && canonical.MatchString(s)
}
