package core

import (
	"reflect"
	"testing"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		path string
		want RouteResult
	}{
		{
			name: "empty path is index",
			path: "",
			want: RouteResult{PageID: PageIndex},
		},
		{
			name: "about",
			path: "about",
			want: RouteResult{PageID: PageAbout},
		},
		{
			name: "user with numeric id",
			path: "user/42",
			want: RouteResult{PageID: PageUser, DataFromURL: map[string]string{"userId": "42"}},
		},
		{
			name: "user id keeps leading zeros",
			path: "user/007",
			want: RouteResult{PageID: PageUser, DataFromURL: map[string]string{"userId": "007"}},
		},
		{
			name: "non numeric user id falls through",
			path: "user/abc",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "empty user id falls through",
			path: "user/",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "mixed user id falls through",
			path: "user/12a",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "nested user path is not a partial match",
			path: "user/12/posts",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "non ascii digits are rejected",
			path: "user/٤٢",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "trailing slash is not normalized",
			path: "about/",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "leading slash is not stripped",
			path: "/about",
			want: RouteResult{PageID: PageNotFound},
		},
		{
			name: "unknown path",
			path: "contact",
			want: RouteResult{PageID: PageNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Route(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRouteOnlyReturnsKnownPages(t *testing.T) {
	paths := []string{"", "about", "user/1", "user/x", "missing", "a/b/c"}
	for _, p := range paths {
		if got := Route(p); !IsKnownPage(got.PageID) {
			t.Errorf("Route(%q) returned unknown page %q", p, got.PageID)
		}
	}
}

func TestKnownPagesReturnsCopy(t *testing.T) {
	pages := KnownPages()
	pages[0] = "mutated"

	if KnownPages()[0] != PageIndex {
		t.Error("KnownPages exposed its backing slice")
	}
}
