package usecase

import (
	"fmt"
	"strings"

	"github.com/3-lines-studio/plusfiles/internal/adapters/pages"
	"github.com/3-lines-studio/plusfiles/internal/core"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

type Finding struct {
	Severity Severity
	Message  string
}

type DoctorOutput struct {
	Findings []Finding
}

func (o DoctorOutput) Healthy() bool {
	for _, f := range o.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// DoctorService checks a project's source layout without serving it.
type DoctorService struct {
	fs FileSystem
}

func NewDoctorService(fs FileSystem) *DoctorService {
	return &DoctorService{fs: fs}
}

func (s *DoctorService) Check() DoctorOutput {
	var out DoctorOutput
	add := func(sev Severity, format string, args ...any) {
		out.Findings = append(out.Findings, Finding{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	shell, err := s.fs.ReadFile(core.ShellTemplate)
	if err != nil {
		add(SeverityError, "%s: %v", core.ShellTemplate, err)
	} else {
		html := string(shell)
		if !strings.Contains(html, core.BodyMarker) {
			add(SeverityError, "%s: missing %s", core.ShellTemplate, core.BodyMarker)
		}
		for _, marker := range []string{core.HeadMarker, core.BodyBottomMarker} {
			if !strings.Contains(html, marker) {
				add(SeverityWarning, "%s: missing %s", core.ShellTemplate, marker)
			}
		}
	}

	for _, id := range core.KnownPages() {
		paths := core.PagePathsFor(id, core.ModeDev)

		switch {
		case s.fs.FileExists(paths.PageHTML):
			s.checkUnit(add, paths.PageHTML, pages.CompileHTML)
		case s.fs.FileExists(paths.PageMarkdown):
			s.checkUnit(add, paths.PageMarkdown, pages.CompileMarkdown)
		default:
			add(SeverityError, "page %q: no %s or %s in %s", id, core.PageHTMLFile, core.PageMarkdownFile, core.SourcePageDir(id))
		}

		if s.fs.FileExists(paths.Head) {
			s.checkUnit(add, paths.Head, pages.CompileHTML)
		}
	}

	if s.fs.FileExists(core.ManifestPath()) {
		data, err := s.fs.ReadFile(core.ManifestPath())
		if err == nil {
			_, err = core.ParseManifest(data)
		}
		if err != nil {
			add(SeverityWarning, "%s: %v", core.ManifestPath(), err)
		}
	}

	return out
}

func (s *DoctorService) checkUnit(add func(Severity, string, ...any), name string, compile func(string, []byte) (core.RenderFunc, error)) {
	data, err := s.fs.ReadFile(name)
	if err != nil {
		add(SeverityError, "%s: %v", name, err)
		return
	}
	if _, err := compile(name, data); err != nil {
		add(SeverityError, "%v", err)
	}
}
