package types

import "fmt"

// UnsupportedFormatError is returned when the file cannot be classified into
// any supported format.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// StructuralError is returned when a mandatory structure is missing or
// truncated: bad magic bytes, a tag header that does not fit, a box header
// cut short. It is fatal for the tag or box tree it refers to; the caller
// may still fall back to an unknown-format view of the file.
type StructuralError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: invalid structure at offset %d: %s", e.Path, e.Offset, e.Reason)
}
