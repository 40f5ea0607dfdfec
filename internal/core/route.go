package core

import "strings"

const userPrefix = "user/"

// Route maps a path with the base prefix already stripped to a page. Rules
// are evaluated in order and the catch-all comes last.
func Route(path string) RouteResult {
	switch {
	case path == "":
		return RouteResult{PageID: PageIndex}
	case path == "about":
		return RouteResult{PageID: PageAbout}
	}

	if userID, ok := strings.CutPrefix(path, userPrefix); ok && isDigits(userID) {
		return RouteResult{
			PageID:      PageUser,
			DataFromURL: map[string]string{"userId": userID},
		}
	}

	return RouteResult{PageID: PageNotFound}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
