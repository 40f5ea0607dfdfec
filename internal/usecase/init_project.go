package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path"

	"github.com/3-lines-studio/plusfiles/internal/templates"
)

var ErrDirectoryNotEmpty = errors.New("directory is not empty")

type InitInput struct {
	Template string
	Project  string
}

type InitOutput struct {
	Files []string
}

// InitService scaffolds a project into the root of fs.
type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

func (s *InitService) InitProject(input InitInput) (InitOutput, error) {
	var out InitOutput

	if input.Template == "" {
		input.Template = templates.DefaultTemplate
	}

	templateFS, err := templates.GetTemplate(input.Template)
	if err != nil {
		return out, fmt.Errorf("template %q: %w", input.Template, err)
	}

	if s.fs.FileExists(".") {
		entries, err := s.fs.ReadDir(".")
		if err != nil {
			return out, fmt.Errorf("failed to read directory: %w", err)
		}
		if len(entries) > 0 {
			return out, ErrDirectoryNotEmpty
		}
	}

	data := templates.TemplateData{Project: input.Project}

	err = iofs.WalkDir(templateFS, ".", func(name string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := iofs.ReadFile(templateFS, name)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", name, err)
		}

		target, isTemplate := templates.ProcessFilename(name)
		content = templates.ProcessContent(content, isTemplate, data)

		if err := s.fs.MkdirAll(path.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path.Dir(target), err)
		}
		if err := s.fs.WriteFile(target, content, 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", target, err)
		}

		out.Files = append(out.Files, target)
		s.cli.PrintFile(target)
		return nil
	})
	if err != nil {
		return out, err
	}

	s.cli.PrintSuccess("Created %d files", len(out.Files))
	return out, nil
}
