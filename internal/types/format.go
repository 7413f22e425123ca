package types

import (
	"io"

	"github.com/simonhull/mediadissect/internal/binary"
)

// Format represents the detected container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatID3v2 represents files carrying an ID3v2 tag (MP3 and friends).
	FormatID3v2
	// FormatISOBMFF represents ISO Base Media files (MP4, M4A, M4B, MOV, 3GP).
	FormatISOBMFF
)

// String returns the format's conventional name.
func (f Format) String() string {
	switch f {
	case FormatID3v2:
		return "ID3v2"
	case FormatISOBMFF:
		return "ISO Base Media"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatID3v2:
		return []string{".mp3", ".aac"}
	case FormatISOBMFF:
		return []string{".mp4", ".m4a", ".m4b", ".m4v", ".m4p", ".mov", ".3gp", ".3g2"}
	default:
		return nil
	}
}

// knownBrands are the ftyp major brands accepted during detection. A file
// whose major brand is not listed here is reported as unsupported rather
// than dissected on a guess.
var knownBrands = map[string]struct{}{
	"isom": {}, "iso2": {}, "iso3": {}, "iso4": {}, "iso5": {}, "iso6": {},
	"mp41": {}, "mp42": {}, "mp71": {},
	"M4A ": {}, "M4V ": {}, "M4P ": {}, "M4B ": {},
	"qt  ": {},
	"3gp4": {}, "3gp5": {}, "3gp6": {}, "3gp7": {}, "3gp8": {}, "3gp9": {},
	"3g2a": {}, "3g2b": {}, "3g2c": {},
	"avc1": {}, "dash": {},
	"MSNV": {}, "msdh": {}, "msix": {}, "mmp4": {}, "mqt ": {},
}

// KnownBrand reports whether the major brand is in the detection table.
func KnownBrand(brand string) bool {
	_, ok := knownBrands[brand]
	return ok
}

// DetectFormat determines the file format by examining magic bytes.
//
// Detection looks at the leading bytes only; it does not validate the rest
// of the file. An MPEG audio stream without an ID3v2 tag still maps to
// FormatID3v2 so the caller gets an empty tag plus a diagnostic instead of
// a hard failure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	// Smallest thing we can classify is an ISOBMFF box header.
	if size < 8 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	// ID3v2 tag header
	if string(magic[:3]) == "ID3" {
		return FormatID3v2, nil
	}

	// MPEG frame sync (0xFFE0) - an audio stream with no leading tag
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatID3v2, nil
	}

	// ISOBMFF: a leading ftyp box with a recognized major brand
	boxType, err := binary.Read[uint32](sr, 4, "leading box type")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}
	if boxType != 0x66747970 { // "ftyp"
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file format",
		}
	}

	boxSize, err := binary.Read[uint32](sr, 0, "ftyp box size")
	if err != nil || boxSize < 16 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "ftyp box too small",
		}
	}

	brand := make([]byte, 4)
	if err := sr.ReadAt(brand, 8, "major brand"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read major brand",
		}
	}
	if !KnownBrand(string(brand)) {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file brand",
		}
	}

	return FormatISOBMFF, nil
}
