package usecase

import (
	"context"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/core"
)

// ServerConfig is the shell template plus the routing function used for one
// request.
type ServerConfig struct {
	Template string
	Routing  func(path string) core.RouteResult
}

// ConfigSource yields the ServerConfig for a request. url is the router
// input, passed so dev transforms can depend on it.
type ConfigSource interface {
	Load(ctx context.Context, url string) (ServerConfig, error)
}

type PageLoader interface {
	Load(ctx context.Context, id core.PageID) (core.PageBundle, error)
}

// Observer receives one call per handled request.
type Observer interface {
	ObserveRequest(page core.PageID, status int, elapsed time.Duration)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem

type nopObserver struct{}

func (nopObserver) ObserveRequest(core.PageID, int, time.Duration) {}
