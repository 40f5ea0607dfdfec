package core

import (
	"fmt"
	"strings"
)

// NormalizeBase makes base start and end with a slash. An empty base is "/".
func NormalizeBase(base string) string {
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// StripBase removes the base prefix from a request path, yielding the router
// input: "/user/7" with base "/" becomes "user/7". Paths outside base are
// returned without their leading slash.
func StripBase(path string, base string) string {
	if rest, ok := strings.CutPrefix(path, base); ok {
		return rest
	}
	if path+"/" == base {
		return ""
	}
	return strings.TrimPrefix(path, "/")
}

func ValidateBase(base string) error {
	if base == "" {
		return fmt.Errorf("base cannot be empty")
	}

	if strings.ContainsAny(base, "?#") {
		return fmt.Errorf("base cannot contain a query string or fragment")
	}

	if strings.Contains(base, "..") {
		return fmt.Errorf("base cannot contain parent directory references")
	}

	if strings.Contains(base, "*") {
		return fmt.Errorf("base cannot contain wildcards")
	}

	if strings.ContainsAny(base, "\"'<>` \t\n") {
		return fmt.Errorf("base cannot contain quotes, angle brackets or whitespace")
	}

	return nil
}
