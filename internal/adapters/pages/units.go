package pages

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// CompileHTML parses an html/template unit. URL parameters are available as
// {{.name}} and are escaped for their HTML context.
func CompileHTML(name string, src []byte) (core.RenderFunc, error) {
	tmpl, err := htmltemplate.New(name).Option("missingkey=zero").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return func(params map[string]string) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, paramsOrEmpty(params)); err != nil {
			return "", err
		}
		return buf.String(), nil
	}, nil
}

// CompileMarkdown parses a markdown unit. Parameters are substituted first,
// then the document is converted to HTML and sanitized.
func CompileMarkdown(name string, src []byte) (core.RenderFunc, error) {
	tmpl, err := texttemplate.New(name).Option("missingkey=zero").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return func(params map[string]string) (string, error) {
		var expanded bytes.Buffer
		if err := tmpl.Execute(&expanded, paramsOrEmpty(params)); err != nil {
			return "", err
		}

		var out bytes.Buffer
		if err := markdown.Convert(expanded.Bytes(), &out); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		return policy.Sanitize(out.String()), nil
	}, nil
}

func paramsOrEmpty(params map[string]string) map[string]string {
	if params == nil {
		return map[string]string{}
	}
	return params
}
