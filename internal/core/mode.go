package core

// Mode selects where page units and the shell template are read from and
// whether they are cached.
type Mode int

const (
	// ModeDev re-reads configuration and page units from the source tree on
	// every request.
	ModeDev Mode = iota
	// ModeProd resolves everything from the build output once at startup.
	ModeProd
)

func (m Mode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	default:
		return "unknown"
	}
}
