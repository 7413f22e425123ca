package mediadissect

import (
	"io"

	"github.com/simonhull/mediadissect/internal/types"
)

// Format identifies the metadata family of a file.
type Format = types.Format

// Supported formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatID3v2   = types.FormatID3v2
	FormatISOBMFF = types.FormatISOBMFF
)

// DetectFormat inspects the leading bytes of a file and classifies it.
// An "ID3" prefix or a bare MPEG frame sync selects the ID3v2 path; an
// ftyp box with a known brand selects ISOBMFF. Anything else returns an
// UnsupportedFormatError.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
