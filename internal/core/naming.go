package core

import (
	"path"
	"strings"
)

const (
	PageUnitName   = "+Page"
	HeadUnitName   = "+Head"
	ClientUnitName = "+onRenderClient"

	PageHTMLFile     = PageUnitName + ".html"
	PageMarkdownFile = PageUnitName + ".md"
	HeadFile         = HeadUnitName + ".html"
	ClientScriptFile = ClientUnitName + ".js"

	SourceDir       = "src"
	DistDir         = "dist"
	ShellTemplate   = "index.html"
	ManifestFile    = "manifest.json"
	plusFilePrefix  = "+"
	sourcePagesDir  = SourceDir + "/pages"
	serverPagesDir  = DistDir + "/server/pages"
	clientDir       = DistDir + "/client"
	clientPagesDir  = clientDir + "/pages"
	clientPagesPath = "pages"
)

// PagePaths are the fs.FS paths, relative to the project root, looked up for one
// page. ClientURL is the path the hydration script is served under, relative
// to the base prefix.
type PagePaths struct {
	PageHTML     string
	PageMarkdown string
	Head         string
	ClientScript string
	ClientURL    string
}

func PagePathsFor(id PageID, mode Mode) PagePaths {
	if mode == ModeProd {
		server, client := ServerPageDir(id), ClientPageDir(id)
		return PagePaths{
			PageHTML:     path.Join(server, PageHTMLFile),
			PageMarkdown: path.Join(server, PageMarkdownFile),
			Head:         path.Join(server, HeadFile),
			ClientScript: path.Join(client, ClientScriptFile),
			ClientURL:    path.Join(clientPagesPath, string(id), ClientScriptFile),
		}
	}

	dir := SourcePageDir(id)
	return PagePaths{
		PageHTML:     path.Join(dir, PageHTMLFile),
		PageMarkdown: path.Join(dir, PageMarkdownFile),
		Head:         path.Join(dir, HeadFile),
		ClientScript: path.Join(dir, ClientScriptFile),
		ClientURL:    path.Join(dir, ClientScriptFile),
	}
}

// TemplatePath is the shell template location for mode.
func TemplatePath(mode Mode) string {
	if mode == ModeProd {
		return path.Join(clientDir, ShellTemplate)
	}
	return ShellTemplate
}

func SourcePageDir(id PageID) string {
	return path.Join(sourcePagesDir, string(id))
}

func ServerPageDir(id PageID) string {
	return path.Join(serverPagesDir, string(id))
}

func ClientPageDir(id PageID) string {
	return path.Join(clientPagesDir, string(id))
}

func ClientDir() string {
	return clientDir
}

func ManifestPath() string {
	return path.Join(DistDir, ManifestFile)
}

// IsPlusFile reports whether the base name of a slash-separated path starts
// with "+". Empty paths and paths with backslashes are not posix paths and
// are rejected.
func IsPlusFile(filePath string) bool {
	if filePath == "" || strings.Contains(filePath, `\`) {
		return false
	}
	return strings.HasPrefix(path.Base(filePath), plusFilePrefix)
}
