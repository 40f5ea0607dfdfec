package core

import (
	"fmt"
	"hash/fnv"
)

// HashContent returns a short hex digest used for cache busting.
func HashContent(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return fmt.Sprintf("%016x", h.Sum64())[:8]
}
