package cli

import (
	"fmt"
	"time"
)

type BuildError struct {
	Page    string
	Message string
}

// BuildReport collects per-page build results and prints a summary.
type BuildReport struct {
	out       *Output
	artifacts []string
	errors    []BuildError
	startTime time.Time
	pageCount int
	outputDir string
	now       func() time.Time
}

func NewBuildReport(out *Output, outputDir string) *BuildReport {
	return &BuildReport{
		out:       out,
		startTime: time.Now(),
		outputDir: outputDir,
		now:       time.Now,
	}
}

func (r *BuildReport) SetPageCount(count int) {
	r.pageCount = count
}

func (r *BuildReport) AddArtifact(path string) {
	r.artifacts = append(r.artifacts, path)
}

func (r *BuildReport) AddError(page string, err error) {
	r.errors = append(r.errors, BuildError{Page: page, Message: err.Error()})
}

func (r *BuildReport) HasFailures() bool {
	return len(r.errors) > 0
}

func (r *BuildReport) Render() {
	duration := r.now().Sub(r.startTime)

	r.out.PrintSuccess("%d pages found", r.pageCount)
	for _, path := range r.artifacts {
		r.out.PrintFile(path)
	}

	if len(r.errors) > 0 {
		r.out.PrintError("Errors (%d):", len(r.errors))
		for _, e := range r.errors {
			r.out.PrintError("%s: %s", e.Page, e.Message)
		}
		r.out.PrintError("Build failed after %s", formatDuration(duration))
		return
	}

	r.out.PrintSuccess("Build complete in %s", formatDuration(duration))
	if r.outputDir != "" {
		r.out.PrintDone("\n  " + r.out.Gray("Output: "+r.outputDir))
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}
