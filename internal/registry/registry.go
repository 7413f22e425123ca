// Package registry manages format-specific dissectors for media file types.
package registry

import (
	"io"

	"github.com/simonhull/mediadissect/internal/types"
)

// Dissector is the interface all format dissectors implement.
type Dissector interface {
	// Dissect walks the file's metadata structures and returns a Result.
	// Structural problems inside the metadata become diagnostics on the
	// Result; an error is returned only when no Result can be built at all.
	Dissect(r io.ReaderAt, size int64, path string, opts types.Options) (*types.Result, error)
}

// dissectors maps formats to their dissectors.
var dissectors = make(map[types.Format]Dissector)

// Register registers a dissector for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, d Dissector) {
	dissectors[format] = d
}

// Get returns the dissector for a given format.
// Returns nil if no dissector is registered for the format.
func Get(format types.Format) Dissector {
	return dissectors[format]
}
