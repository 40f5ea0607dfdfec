package templates

import (
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed all:starter
var starterFS embed.FS

//go:embed all:markdown
var markdownFS embed.FS

const DefaultTemplate = "starter"

var validTemplates = []string{"starter", "markdown"}

var ErrInvalidTemplate = errors.New("invalid template name")

func Names() []string {
	return append([]string(nil), validTemplates...)
}

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "starter":
		return fs.Sub(starterFS, "starter")
	case "markdown":
		return fs.Sub(markdownFS, "markdown")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Project string
}

// ProcessFilename strips the .tmpl suffix. Only .tmpl files get placeholder
// substitution; page units keep their own template syntax untouched.
func ProcessFilename(filename string) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.Project}}", data.Project)

	return []byte(result)
}

func DeriveProjectName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "myapp"
	}
	return base
}
