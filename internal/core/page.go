package core

// PageID names one renderable page. The set is fixed and shared by the
// router and every page loader.
type PageID string

const (
	PageIndex    PageID = "index"
	PageAbout    PageID = "about"
	PageUser     PageID = "user"
	PageNotFound PageID = "not-found"
)

var knownPages = []PageID{PageIndex, PageAbout, PageUser, PageNotFound}

// KnownPages returns a copy of the page enumeration in a stable order.
func KnownPages() []PageID {
	pages := make([]PageID, len(knownPages))
	copy(pages, knownPages)
	return pages
}

func IsKnownPage(id PageID) bool {
	for _, known := range knownPages {
		if known == id {
			return true
		}
	}
	return false
}

// RenderFunc turns URL parameters into an HTML fragment.
type RenderFunc func(params map[string]string) (string, error)

// PageBundle is the resolved set of render functions for one page. Head is
// nil and ClientScriptPath is empty when the page does not provide them.
type PageBundle struct {
	Render           RenderFunc
	Head             RenderFunc
	ClientScriptPath string
}

// RouteResult is what the router extracted from a request path.
type RouteResult struct {
	PageID      PageID
	DataFromURL map[string]string
}
