package core

import (
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
)

const shell = `<html><head><!--app-head--></head><body><div id="app"><!--app-html--></div><!--app-body-bottom--></body></html>`

func TestCompose(t *testing.T) {
	t.Run("replaces each marker once and keeps the rest", func(t *testing.T) {
		got := Compose(shell, Fragments{
			Head:      "<title>T</title>",
			Body:      "<p>body</p>",
			ScriptTag: `<script type="module" src="/a.js"></script>`,
		})

		want := `<html><head><title>T</title></head><body><div id="app"><p>body</p></div><script type="module" src="/a.js"></script></body></html>`
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "<!--app-")
	})

	t.Run("only the first occurrence of a marker is replaced", func(t *testing.T) {
		tmpl := "<!--app-html-->|<!--app-html-->"

		got := Compose(tmpl, Fragments{Body: "X"})

		assert.Equal(t, "X|<!--app-html-->", got)
		assert.Equal(t, 1, strings.Count(got, BodyMarker))
	})

	t.Run("missing markers are ignored", func(t *testing.T) {
		tmpl := "<html><body>static</body></html>"

		got := Compose(tmpl, Fragments{Body: "X", Head: "H", ScriptTag: "S"})

		assert.Equal(t, tmpl, got)
	})

	t.Run("empty fragments remove the markers", func(t *testing.T) {
		got := Compose(shell, Fragments{})

		assert.Equal(t, `<html><head></head><body><div id="app"></div></body></html>`, got)
	})

	t.Run("fragments containing markers are not substituted again", func(t *testing.T) {
		got := Compose("<!--app-head--><!--app-html-->", Fragments{Head: "<!--app-html-->", Body: "B"})

		assert.Equal(t, "B<!--app-html-->", got)
	})
}

func TestComposeSnapshot(t *testing.T) {
	got := Compose(shell, Fragments{
		Head:      "<title>User 7</title>",
		Body:      "<h1>User Page</h1><p>Showing user with ID: 7</p>",
		ScriptTag: ScriptTag("/src/pages/user/+onRenderClient.js"),
	})

	snaps.MatchSnapshot(t, got)
}

func TestInjectBeforeBodyClose(t *testing.T) {
	assert.Equal(t, "<body>a<s></s></body>", InjectBeforeBodyClose("<body>a</body>", "<s></s>"))
	assert.Equal(t, "a<s></s>", InjectBeforeBodyClose("a", "<s></s>"))
	assert.Equal(t, "<s></s></body></body>", InjectBeforeBodyClose("</body></body>", "<s></s>"))
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
