package mediadissect

import (
	binutil "github.com/simonhull/mediadissect/internal/binary"
	"github.com/simonhull/mediadissect/internal/types"
)

// UnsupportedFormatError is returned when the file cannot be classified
// into any supported format.
type UnsupportedFormatError = types.UnsupportedFormatError

// OutOfBoundsError is returned when a read would start past the end of
// the source or extend beyond it.
type OutOfBoundsError = binutil.OutOfBoundsError

// StructuralError is returned when a mandatory structure is missing or
// truncated: bad magic bytes, a tag header that does not fit, an
// unreadable tag body. Diagnostics on the Result cover everything less
// severe than that.
type StructuralError = types.StructuralError
