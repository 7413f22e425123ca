// Package id3v2 dissects ID3v2.3 and ID3v2.4 tags into frame trees,
// including the Chapter Addendum's CHAP/CTOC embedded sub-frames.
package id3v2

import (
	"encoding/binary"
	"fmt"
	"io"

	binutil "github.com/simonhull/mediadissect/internal/binary"
	"github.com/simonhull/mediadissect/internal/registry"
	"github.com/simonhull/mediadissect/internal/types"
)

// Tag size sanity tiers. These are post-decode heuristics layered on top of
// the decoded size, not part of the decoding rule itself.
const (
	sizeInfoThreshold    = 10_000_000  // rich podcast territory
	sizeWarningThreshold = 50_000_000  // likely chapter images
	sizeFatalCeiling     = 100_000_000 // tag abandoned past this point
)

// Dissector parses ID3v2 tags.
type Dissector struct{}

func init() {
	registry.Register(types.FormatID3v2, &Dissector{})
}

// Dissect reads the leading ID3v2 tag and returns a Result holding its
// header, frames and diagnostics. A bare MPEG audio stream (frame sync with
// no tag) yields a tagless Result with an Info diagnostic rather than an
// error; only a file that carries neither is a structural failure.
func (d *Dissector) Dissect(r io.ReaderAt, size int64, path string, opts types.Options) (*types.Result, error) {
	sr := binutil.NewSafeReader(r, size, path)
	result := &types.Result{
		Path:   path,
		Size:   size,
		Format: types.FormatID3v2,
	}

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return nil, &types.StructuralError{
			Path:   path,
			Reason: "file too small for an ID3v2 header",
			Offset: 0,
		}
	}

	if string(header[0:3]) != "ID3" {
		if header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
			result.AddDiagnostic(types.Diagnostic{
				Severity: types.SeverityInfo,
				Offset:   0,
				Message:  "MPEG audio stream with no leading ID3v2 tag",
			})
			return d.finish(result, nil, opts)
		}
		return nil, &types.StructuralError{
			Path:   path,
			Reason: "missing ID3 magic bytes",
			Offset: 0,
		}
	}

	tag := &types.Tag{
		Version:  header[3],
		Revision: header[4],
		Flags:    header[5],
	}
	result.Tag = tag

	st := &parseState{version: tag.Version}

	// Tag size: synchsafe from v2.4 onward, plain big-endian for v2.3.
	if tag.Version >= 4 {
		decoded, ok := binutil.DecodeSynchsafe(header[6:10])
		tag.Size = decoded
		if !ok {
			tag.SizeFault = true
			st.diag(types.SeverityWarning, 6, "id3v2",
				"tag size field violates synchsafe encoding, using big-endian value %d", decoded)
		}
	} else {
		tag.Size = binary.BigEndian.Uint32(header[6:10])
	}

	if tag.Version != 3 && tag.Version != 4 {
		st.diag(types.SeverityWarning, 3, "id3v2",
			"unsupported ID3v2 version 2.%d; tag header retained without frames", tag.Version)
		return d.finish(result, st, opts)
	}

	switch {
	case tag.Size > sizeFatalCeiling:
		st.diag(types.SeverityFatal, 6, "id3v2",
			"declared tag size %d exceeds the 100MB ceiling; tag abandoned", tag.Size)
		return d.finish(result, st, opts)
	case tag.Size > sizeWarningThreshold:
		st.diag(types.SeverityWarning, 6, "id3v2",
			"tag size %d is very large (>50MB), likely rich podcast with chapter images", tag.Size)
	case tag.Size > sizeInfoThreshold:
		st.diag(types.SeverityInfo, 6, "id3v2",
			"large tag size %d (>10MB), possibly podcast with embedded chapter content", tag.Size)
	}

	bodySize := int64(tag.Size)
	if 10+bodySize > size {
		st.diag(types.SeverityError, 6, "id3v2",
			"declared tag size %d exceeds the %d bytes present; truncating", tag.Size, size-10)
		bodySize = size - 10
	}
	if bodySize <= 0 {
		return d.finish(result, st, opts)
	}

	body := make([]byte, bodySize)
	if err := sr.ReadAt(body, 10, "ID3v2 tag body"); err != nil {
		return nil, &types.StructuralError{
			Path:   path,
			Reason: fmt.Sprintf("failed to read tag body: %v", err),
			Offset: 10,
		}
	}

	// v2.3 unsynchronizes the tag as a whole. In v2.4 the tag-level flag
	// only announces that every frame carries its own unsync flag, so
	// stuffing is removed per frame and the body stays untouched here.
	if tag.Unsync() && tag.Version == 3 {
		body = binutil.RemoveUnsync(body)
	}

	frameStart := 0
	if tag.HasExtendedHeader() {
		skip, ok := extendedHeaderSize(body, tag.Version)
		if !ok || skip > len(body) {
			st.diag(types.SeverityError, 10, "id3v2",
				"invalid extended header size; skipping frame parsing")
			return d.finish(result, st, opts)
		}
		tag.ExtendedSize = uint32(skip)
		frameStart = skip
	}

	tag.Frames = parseFrames(body[frameStart:], 10+int64(frameStart), st, false)
	return d.finish(result, st, opts)
}

// extendedHeaderSize returns the number of body bytes occupied by the
// extended header. Both versions store the size in the first 4 bytes,
// excluding the size field itself; v2.4 encodes it synchsafe.
func extendedHeaderSize(body []byte, version byte) (int, bool) {
	if len(body) < 4 {
		return 0, false
	}
	if version >= 4 {
		decoded, ok := binutil.DecodeSynchsafe(body[0:4])
		if !ok {
			return 0, false
		}
		return 4 + int(decoded), true
	}
	return 4 + int(binary.BigEndian.Uint32(body[0:4])), true
}

// finish flushes collected diagnostics onto the result, then applies the
// strict option and option-dependent trimming.
func (d *Dissector) finish(result *types.Result, st *parseState, opts types.Options) (*types.Result, error) {
	if st != nil {
		result.Diagnostics = append(result.Diagnostics, st.diags...)
	}
	if !opts.RawData && result.Tag != nil {
		dropPictureData(result.Tag.Frames)
	}
	if opts.Strict {
		if sev, ok := result.MaxSeverity(); ok && sev >= types.SeverityError {
			return result, &types.StructuralError{
				Path:   result.Path,
				Reason: "tag contains error-level diagnostics (strict mode)",
				Offset: -1,
			}
		}
	}
	return result, nil
}

// dropPictureData clears the raw payload of APIC frames when raw data was
// not requested. The decoded PictureContent still carries the image bytes,
// so the picture remains inspectable through the content variant.
func dropPictureData(frames []types.Frame) {
	for i := range frames {
		if frames[i].ID == "APIC" {
			frames[i].Data = nil
		}
		switch c := frames[i].Content.(type) {
		case types.ChapterContent:
			dropPictureData(c.Frames)
		case types.TOCContent:
			dropPictureData(c.Frames)
		}
	}
}
