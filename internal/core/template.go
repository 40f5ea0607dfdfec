package core

import "strings"

const (
	HeadMarker       = "<!--app-head-->"
	BodyMarker       = "<!--app-html-->"
	BodyBottomMarker = "<!--app-body-bottom-->"
	bodyCloseTag     = "</body>"
	firstOccurrence  = 1
)

// Compose replaces the first occurrence of each marker with its fragment.
// Missing markers are left alone, as are repeated ones.
func Compose(template string, f Fragments) string {
	html := strings.Replace(template, HeadMarker, f.Head, firstOccurrence)
	html = strings.Replace(html, BodyMarker, f.Body, firstOccurrence)
	html = strings.Replace(html, BodyBottomMarker, f.ScriptTag, firstOccurrence)
	return html
}

// InjectBeforeBodyClose inserts snippet before the first </body>, or appends
// it when the document has none.
func InjectBeforeBodyClose(html string, snippet string) string {
	if strings.Contains(html, bodyCloseTag) {
		return strings.Replace(html, bodyCloseTag, snippet+bodyCloseTag, firstOccurrence)
	}
	return html + snippet
}
