package core

import (
	"fmt"
	"html"
)

// Fragments are the three pieces spliced into the shell template.
type Fragments struct {
	Body      string
	Head      string
	ScriptTag string
}

// Render invokes the bundle's functions with params. Errors from the page or
// head function are returned as *RenderError.
func Render(page PageID, bundle PageBundle, params map[string]string) (Fragments, error) {
	if bundle.Render == nil {
		return Fragments{}, &RenderError{Page: page, Unit: PageUnitName, Err: ErrPageUnitMissing}
	}

	body, err := bundle.Render(params)
	if err != nil {
		return Fragments{}, &RenderError{Page: page, Unit: PageUnitName, Err: err}
	}

	var head string
	if bundle.Head != nil {
		head, err = bundle.Head(params)
		if err != nil {
			return Fragments{}, &RenderError{Page: page, Unit: HeadUnitName, Err: err}
		}
	}

	return Fragments{
		Body:      body,
		Head:      head,
		ScriptTag: ScriptTag(bundle.ClientScriptPath),
	}, nil
}

// ScriptTag returns the module script tag for a hydration script, or "" when
// src is empty. src is attribute-escaped.
func ScriptTag(src string) string {
	if src == "" {
		return ""
	}
	return fmt.Sprintf(`<script type="module" src="%s"></script>`, html.EscapeString(src))
}
