// Command example serves an embedded project. The about page is defined in Go
// and every other page comes from plus files.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/3-lines-studio/plusfiles"
)

//go:embed all:site
var siteFS embed.FS

func aboutPage(map[string]string) (string, error) {
	return fmt.Sprintf("<h1>About</h1><p>Rendered by Go %s.</p>", runtime.Version()), nil
}

func main() {
	site, err := fs.Sub(siteFS, "site")
	if err != nil {
		log.Fatal(err)
	}

	app, err := plusfiles.New(context.Background(),
		plusfiles.WithMode(plusfiles.ModeDev),
		plusfiles.WithFS(site),
		plusfiles.WithPage(plusfiles.PageAbout, plusfiles.PageBundle{Render: aboutPage}),
	)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer app.Stop()

	srv := &http.Server{
		Addr:              ":5173",
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}
