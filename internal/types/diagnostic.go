package types

import "fmt"

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	// SeverityInfo is informational, e.g. an unusually large but legal tag.
	SeverityInfo Severity = iota
	// SeverityWarning indicates suspicious data that was still decoded.
	SeverityWarning
	// SeverityError indicates a malformed unit that was skipped or truncated.
	SeverityError
	// SeverityFatal indicates the enclosing tag or box tree was abandoned.
	SeverityFatal
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic records a non-fatal issue encountered during dissection.
//
// Diagnostics are data, not errors: a malformed frame or box produces a
// diagnostic and dissection continues with whatever was already built.
// They are collected in file order on Result.Diagnostics.
type Diagnostic struct {
	// Severity of the issue
	Severity Severity

	// Offset is the absolute byte offset where the issue occurred,
	// or -1 when no single offset applies.
	Offset int64

	// Path is a structural path such as "id3v2/CHAP" or "moov/udta/meta",
	// empty when the offset alone locates the issue.
	Path string

	// Message is a human-readable description.
	Message string
}

// String returns a human-readable diagnostic message.
func (d Diagnostic) String() string {
	switch {
	case d.Path != "" && d.Offset >= 0:
		return fmt.Sprintf("%s: %s (at offset %d): %s", d.Severity, d.Path, d.Offset, d.Message)
	case d.Path != "":
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Path, d.Message)
	case d.Offset >= 0:
		return fmt.Sprintf("%s (at offset %d): %s", d.Severity, d.Offset, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
}
