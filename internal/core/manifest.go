package core

import (
	"encoding/json"
	"strings"
)

type ManifestEntry struct {
	Page       string `json:"page"`
	Head       string `json:"head,omitempty"`
	Client     string `json:"client,omitempty"`
	ClientHash string `json:"clientHash,omitempty"`
	Hash       string `json:"hash"`
}

type Manifest struct {
	Template string                   `json:"template"`
	Entries  map[PageID]ManifestEntry `json:"entries"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ClientVersion returns the content hash recorded for a page's hydration
// script, or "" when there is none.
func (m *Manifest) ClientVersion(id PageID) string {
	if m == nil {
		return ""
	}
	return m.Entries[id].ClientHash
}

// AddCacheBust appends a version query parameter to url.
func AddCacheBust(url string, value string) string {
	if value == "" {
		return url
	}

	separator := "?"
	if strings.Contains(url, "?") {
		separator = "&"
	}

	return url + separator + "v=" + value
}
