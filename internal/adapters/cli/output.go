package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

type Output struct {
	out     io.Writer
	err     io.Writer
	profile termenv.Profile
}

// NewOutput writes to stdout and stderr, coloring only when stdout supports
// it and NO_COLOR is unset.
func NewOutput() *Output {
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	return NewOutputTo(os.Stdout, os.Stderr, profile)
}

func NewOutputTo(out, err io.Writer, profile termenv.Profile) *Output {
	return &Output{out: out, err: err, profile: profile}
}

func (o *Output) DisableColors() {
	o.profile = termenv.Ascii
}

func (o *Output) color(text, code string) string {
	return o.profile.String(text).Foreground(o.profile.Color(code)).String()
}

func (o *Output) Green(text string) string  { return o.color(text, "2") }
func (o *Output) Yellow(text string) string { return o.color(text, "3") }
func (o *Output) Red(text string) string    { return o.color(text, "1") }
func (o *Output) Gray(text string) string   { return o.color(text, "8") }

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	fmt.Fprintf(o.out, "  %s%s\n", o.Green("✓ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintWarning(msg string, args ...any) {
	fmt.Fprintf(o.out, "  %s%s\n", o.Yellow("⚠ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	fmt.Fprintf(o.err, "  %s%s\n", o.Red("✗ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", o.Gray(path))
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}
