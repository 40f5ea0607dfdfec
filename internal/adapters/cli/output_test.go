package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plainOutput() (*Output, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewOutputTo(&out, &errOut, termenv.Ascii), &out, &errOut
}

func TestOutputWithoutColors(t *testing.T) {
	o, out, errOut := plainOutput()

	o.PrintSuccess("built %d pages", 4)
	o.PrintWarning("slow")
	o.PrintError("failed %s", "user")

	assert.Equal(t, "  ✓ built 4 pages\n  ⚠ slow\n", out.String())
	assert.Equal(t, "  ✗ failed user\n", errOut.String())
}

func TestOutputColors(t *testing.T) {
	var out bytes.Buffer
	o := NewOutputTo(&out, &out, termenv.ANSI)

	assert.Contains(t, o.Green("ok"), "\x1b[")
	o.DisableColors()
	assert.Equal(t, "ok", o.Green("ok"))
}

func TestBuildReport(t *testing.T) {
	formatTests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range formatTests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}

	t.Run("success", func(t *testing.T) {
		o, out, _ := plainOutput()
		r := NewBuildReport(o, "dist")
		r.now = func() time.Time { return r.startTime.Add(40 * time.Millisecond) }
		r.SetPageCount(4)
		r.AddArtifact("dist/server/pages/index/+Page.html")
		r.Render()

		assert.False(t, r.HasFailures())
		assert.Contains(t, out.String(), "✓ 4 pages found")
		assert.Contains(t, out.String(), "dist/server/pages/index/+Page.html")
		assert.Contains(t, out.String(), "Build complete in 40ms")
		assert.Contains(t, out.String(), "Output: dist")
	})

	t.Run("failure", func(t *testing.T) {
		o, _, errOut := plainOutput()
		r := NewBuildReport(o, "dist")
		r.AddError("user", errors.New("template: bad"))
		r.Render()

		assert.True(t, r.HasFailures())
		assert.Contains(t, errOut.String(), "user: template: bad")
		assert.Contains(t, errOut.String(), "Build failed")
	})
}
