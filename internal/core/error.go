package core

import (
	"errors"
	"fmt"
	"html/template"
)

var (
	ErrPageNotFound    = errors.New("no page bundle registered for page id")
	ErrPageUnitMissing = errors.New("page has no +Page unit")
	ErrTemplateMissing = errors.New("shell template not found")
)

// RenderError reports a failure inside a page or head function.
type RenderError struct {
	Page PageID
	Unit string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s of page %q: %v", e.Unit, e.Page, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered while handling a request.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type ErrorData struct {
	ErrorID string
	Message string
	Stack   string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<meta charset="utf-8">
<title>500 | plusfiles</title>
<style>
  main { font: 15px/1.5 ui-monospace, monospace; margin: 3rem auto; max-width: 60rem; }
  .message { color: #b00020; white-space: pre-wrap; }
  .stack { background: #f4f4f4; padding: 1rem; overflow: auto; }
  footer { color: #777; }
</style>
<main>
  <h1>500: page failed to render</h1>
  <p class="message">{{.Message}}</p>
  {{- if and .IsDev .Stack}}
  <pre class="stack">{{.Stack}}</pre>
  {{- end}}
  <footer>error id {{.ErrorID}}</footer>
</main>
</html>`))
