package types

// Result is the complete outcome of dissecting one file.
//
// Exactly one of Tag and Boxes is populated, depending on Format. The
// diagnostics slice is in discovery order; a Result with Fatal diagnostics
// is still a valid Result (its Frames or Boxes are simply empty).
type Result struct {
	// Path of the dissected file, or the label given to OpenReader.
	Path string

	// Size of the file in bytes.
	Size int64

	// Format detected from the leading bytes.
	Format Format

	// Tag is the ID3v2 tag, nil for non-ID3v2 formats.
	Tag *Tag

	// Boxes is the top-level box tree, nil for non-ISOBMFF formats.
	Boxes []Box

	// Diagnostics collected during dissection, in discovery order.
	Diagnostics []Diagnostic
}

// AddDiagnostic appends a diagnostic to the result.
func (r *Result) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// MaxSeverity returns the highest severity present; ok is false when the
// result carries no diagnostics at all.
func (r *Result) MaxSeverity() (Severity, bool) {
	if len(r.Diagnostics) == 0 {
		return SeverityInfo, false
	}
	max := r.Diagnostics[0].Severity
	for _, d := range r.Diagnostics[1:] {
		if d.Severity > max {
			max = d.Severity
		}
	}
	return max, true
}

// FindFrame returns the first frame with the given ID, or nil.
func (r *Result) FindFrame(id string) *Frame {
	if r.Tag == nil {
		return nil
	}
	for i := range r.Tag.Frames {
		if r.Tag.Frames[i].ID == id {
			return &r.Tag.Frames[i]
		}
	}
	return nil
}

// FindBox walks the box tree along a path of type codes, e.g.
// "moov", "udta", "meta", "ilst". It returns nil when any step is missing.
func (r *Result) FindBox(path ...string) *Box {
	if len(path) == 0 {
		return nil
	}
	boxes := r.Boxes
	var found *Box
	for _, typ := range path {
		found = nil
		for i := range boxes {
			if boxes[i].Type == typ {
				found = &boxes[i]
				break
			}
		}
		if found == nil {
			return nil
		}
		boxes = found.Children
	}
	return found
}
