package usecase

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/adapters/pages"
	"github.com/3-lines-studio/plusfiles/internal/core"
)

const publicDir = "public"

type BuildInput struct {
	// Clean removes dist/ before writing.
	Clean bool
}

type PageError struct {
	Page core.PageID
	Err  error
}

type BuildOutput struct {
	Pages     int
	Artifacts []string
	Errors    []PageError
	Manifest  *core.Manifest
}

func (o BuildOutput) Success() bool {
	return len(o.Errors) == 0
}

// BuildService copies and validates the plus files of a project into the dist
// layout the cached mode serves from.
type BuildService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewBuildService(fs FileSystem, cli CLIOutput) *BuildService {
	return &BuildService{
		fs:  fs,
		cli: cli,
	}
}

func (s *BuildService) BuildProject(ctx context.Context, input BuildInput) (BuildOutput, error) {
	out := BuildOutput{
		Manifest: &core.Manifest{
			Template: core.TemplatePath(core.ModeProd),
			Entries:  map[core.PageID]core.ManifestEntry{},
		},
	}

	if input.Clean {
		if err := s.fs.RemoveAll(core.DistDir); err != nil {
			return out, fmt.Errorf("clean %s: %w", core.DistDir, err)
		}
	}

	shell, err := s.fs.ReadFile(core.ShellTemplate)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return out, core.ErrTemplateMissing
		}
		return out, fmt.Errorf("read %s: %w", core.ShellTemplate, err)
	}
	if err := s.write(&out, out.Manifest.Template, shell); err != nil {
		return out, err
	}

	for _, id := range core.KnownPages() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Pages++

		entry, err := s.buildPage(&out, id)
		if err != nil {
			out.Errors = append(out.Errors, PageError{Page: id, Err: err})
			continue
		}
		out.Manifest.Entries[id] = entry
	}

	if err := s.copyPublic(&out); err != nil {
		return out, err
	}

	if !out.Success() {
		return out, fmt.Errorf("build failed for %d page(s)", len(out.Errors))
	}

	data, err := out.Manifest.Marshal()
	if err != nil {
		return out, fmt.Errorf("encode manifest: %w", err)
	}
	if err := s.write(&out, core.ManifestPath(), data); err != nil {
		return out, err
	}

	return out, nil
}

func (s *BuildService) buildPage(out *BuildOutput, id core.PageID) (core.ManifestEntry, error) {
	src := core.PagePathsFor(id, core.ModeDev)
	dst := core.PagePathsFor(id, core.ModeProd)

	var entry core.ManifestEntry

	page, err := s.readUnit(src.PageHTML, pages.CompileHTML)
	if err != nil {
		return entry, err
	}
	target, stale := dst.PageHTML, dst.PageMarkdown
	if page == nil {
		page, err = s.readUnit(src.PageMarkdown, pages.CompileMarkdown)
		if err != nil {
			return entry, err
		}
		target, stale = dst.PageMarkdown, dst.PageHTML
	}
	if page == nil {
		return entry, core.ErrPageUnitMissing
	}
	// The loader prefers +Page.html, so a leftover one would shadow a fresh
	// +Page.md.
	if err := s.removeStale(stale); err != nil {
		return entry, err
	}
	if err := s.write(out, target, page); err != nil {
		return entry, err
	}
	entry.Page = target
	entry.Hash = core.HashContent(page)

	head, err := s.readUnit(src.Head, pages.CompileHTML)
	if err != nil {
		return entry, err
	}
	if head != nil {
		if err := s.write(out, dst.Head, head); err != nil {
			return entry, err
		}
		entry.Head = dst.Head
	} else if err := s.removeStale(dst.Head); err != nil {
		return entry, err
	}

	script, err := s.readUnit(src.ClientScript, nil)
	if err != nil {
		return entry, err
	}
	if script != nil {
		if err := s.copy(out, src.ClientScript, dst.ClientScript); err != nil {
			return entry, err
		}
		entry.Client = dst.ClientScript
		entry.ClientHash = core.HashContent(script)
	} else if err := s.removeStale(dst.ClientScript); err != nil {
		return entry, err
	}

	return entry, nil
}

// readUnit returns nil data for a missing file. When compile is set the unit
// is parsed so template errors fail the build.
func (s *BuildService) readUnit(name string, compile func(string, []byte) (core.RenderFunc, error)) ([]byte, error) {
	data, ok, err := fs.Lookup(s.fs.FS(), name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !ok {
		return nil, nil
	}
	if compile != nil {
		if _, err := compile(name, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (s *BuildService) removeStale(name string) error {
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("remove stale %s: %w", name, err)
	}
	return nil
}

func (s *BuildService) copyPublic(out *BuildOutput) error {
	if !s.fs.FileExists(publicDir) {
		return nil
	}

	return s.fs.WalkDir(publicDir, func(name string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := name[len(publicDir)+1:]
		if rel == core.ShellTemplate {
			s.cli.PrintWarning("skipping %s: it would replace the shell template", name)
			return nil
		}

		return s.copy(out, name, path.Join(core.ClientDir(), rel))
	})
}

func (s *BuildService) copy(out *BuildOutput, src, dst string) error {
	if err := s.fs.CopyFile(src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	out.Artifacts = append(out.Artifacts, dst)
	return nil
}

func (s *BuildService) write(out *BuildOutput, name string, data []byte) error {
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(name), err)
	}
	if err := s.fs.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	out.Artifacts = append(out.Artifacts, name)
	return nil
}
