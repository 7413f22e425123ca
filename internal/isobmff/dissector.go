// Package isobmff dissects ISO Base Media File Format box trees, including
// the iTunes metadata items nested under moov/udta/meta/ilst.
package isobmff

import (
	"fmt"
	"io"
	"strings"

	binutil "github.com/simonhull/mediadissect/internal/binary"
	"github.com/simonhull/mediadissect/internal/registry"
	"github.com/simonhull/mediadissect/internal/types"
)

const (
	// maxDepth bounds box nesting. Real files top out around 8 levels;
	// past this the tree is left unexpanded rather than recursed into.
	maxDepth = 20

	// bulkLeafThreshold is the largest leaf payload that gets buffered.
	// Anything bigger (mdat, embedded video) is recorded by offset and
	// size only.
	bulkLeafThreshold = 1024 * 1024
)

// Dissector parses ISOBMFF box trees.
type Dissector struct{}

func init() {
	registry.Register(types.FormatISOBMFF, &Dissector{})
}

type parseState struct {
	sr    *binutil.SafeReader
	diags []types.Diagnostic
}

func (st *parseState) diag(sev types.Severity, off int64, path, format string, args ...any) {
	st.diags = append(st.diags, types.Diagnostic{
		Severity: sev,
		Offset:   off,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Dissect walks the top-level boxes and returns the assembled tree.
// Malformed boxes truncate their own level and surface as diagnostics;
// the call itself fails only when the file cannot be read at all.
func (d *Dissector) Dissect(r io.ReaderAt, size int64, path string, opts types.Options) (*types.Result, error) {
	sr := binutil.NewSafeReader(r, size, path)
	result := &types.Result{
		Path:   path,
		Size:   size,
		Format: types.FormatISOBMFF,
	}

	st := &parseState{sr: sr}
	result.Boxes = st.parseBoxes(0, size, 0, "")
	result.Diagnostics = append(result.Diagnostics, st.diags...)

	if !opts.TechnicalLeaves {
		result.Boxes = pruneTechnical(result.Boxes)
	}
	if !opts.RawData {
		dropBoxData(result.Boxes)
	}
	if opts.Strict {
		if sev, ok := result.MaxSeverity(); ok && sev >= types.SeverityError {
			return result, &types.StructuralError{
				Path:   path,
				Reason: "box tree contains error-level diagnostics (strict mode)",
				Offset: -1,
			}
		}
	}
	return result, nil
}

// parseBoxes reads the sequence of sibling boxes in [start, end). A box
// with an impossible size ends the level: the diagnostic is recorded,
// earlier siblings are kept, and parsing resumes in the parent.
func (st *parseState) parseBoxes(start, end int64, depth int, path string) []types.Box {
	var boxes []types.Box
	off := start

	for off < end {
		if end-off < 8 {
			st.diag(types.SeverityWarning, off, path,
				"%d trailing bytes, too small for a box header", end-off)
			break
		}

		hr := binutil.NewReader(st.sr, off)
		size32, err := binutil.ReadValue[uint32](hr, "box size")
		if err != nil {
			st.diag(types.SeverityError, off, path, "unreadable box header: %v", err)
			break
		}
		typeRaw, err := hr.ReadString(4, "box type")
		if err != nil {
			st.diag(types.SeverityError, off, path, "unreadable box header: %v", err)
			break
		}
		boxType := boxTypeString([]byte(typeRaw))
		boxPath := joinPath(path, boxType)

		boxSize := uint64(size32)
		headerSize := int64(8)
		switch size32 {
		case 1:
			ext, err := binutil.ReadValue[uint64](hr, "extended box size")
			if err != nil {
				st.diag(types.SeverityError, off, boxPath, "unreadable extended size: %v", err)
				return boxes
			}
			boxSize = ext
			headerSize = hr.Offset() - off
		case 0:
			// Box runs to the end of its enclosing region.
			boxSize = uint64(end - off)
		}

		if boxSize < uint64(headerSize) {
			st.diag(types.SeverityError, off, boxPath,
				"declared size %d is smaller than the %d-byte header", boxSize, headerSize)
			return boxes
		}
		if off+int64(boxSize) > end {
			st.diag(types.SeverityError, off, boxPath,
				"declared size %d extends %d bytes beyond the enclosing box",
				boxSize, off+int64(boxSize)-end)
			return boxes
		}

		box := types.Box{
			Type:       boxType,
			Size:       boxSize,
			HeaderSize: headerSize,
			Offset:     off,
		}

		if isContainer(boxType) {
			st.parseContainer(&box, depth, boxPath)
		} else {
			st.parseLeaf(&box, boxPath)
		}

		boxes = append(boxes, box)
		off += int64(boxSize)
	}

	return boxes
}

func (st *parseState) parseContainer(box *types.Box, depth int, boxPath string) {
	box.Class = types.ClassContainer
	contentStart := box.DataOffset()
	contentEnd := box.Offset + int64(box.Size)

	// meta and dref are full boxes: version/flags (and for dref the entry
	// count) precede the children.
	switch box.Type {
	case "meta":
		if contentEnd-contentStart >= 4 {
			contentStart += 4
		}
	case "dref":
		if contentEnd-contentStart >= 8 {
			fr := binutil.NewReader(st.sr, contentStart)
			if version, err := binutil.ReadValue[uint8](fr, "dref version"); err == nil {
				fr.Skip(3) // flags
				if count, err := binutil.ReadValue[uint32](fr, "dref entry count"); err == nil {
					box.Content = types.DataReferenceContent{
						Version:    version,
						EntryCount: count,
					}
				}
			}
			contentStart += 8
		}
	}

	if depth+1 > maxDepth {
		// Soft stop: keep the box, skip its subtree.
		box.Class = types.ClassLeaf
		st.diag(types.SeverityWarning, box.Offset, boxPath,
			"box nesting exceeds %d levels; subtree left unexpanded", maxDepth)
		return
	}

	box.Children = st.parseBoxes(contentStart, contentEnd, depth+1, boxPath)

	if itunesItemTypes[box.Type] {
		for i := range box.Children {
			child := &box.Children[i]
			if child.Type != "data" {
				continue
			}
			if child.Class == types.ClassBulkLeaf {
				// The payload was never buffered, but image values only
				// need the type code and length from the 8-byte preamble.
				if value, ok := st.bulkItunesImage(child); ok {
					box.Content = value
				}
				break
			}
			if len(child.Data) == 0 {
				continue
			}
			value, err := parseItunesValue(box.Type, child.Data)
			if err != nil {
				st.diag(types.SeverityWarning, child.Offset, boxPath,
					"undecodable iTunes value: %v", err)
				break
			}
			box.Content = value
			break
		}
	}
}

// bulkItunesImage decodes an image value from an unbuffered data box.
// Oversized cover art crosses the bulk threshold routinely; the type
// code sits in the preamble and the length follows from the box size.
func (st *parseState) bulkItunesImage(child *types.Box) (types.ItunesValueContent, bool) {
	var v types.ItunesValueContent
	if child.DataSize() < 8 {
		return v, false
	}
	head := make([]byte, 8)
	if err := st.sr.ReadAt(head, child.DataOffset(), "data box preamble"); err != nil {
		return v, false
	}
	v.DataType = head[3]
	v.Kind = types.ItunesImage
	v.DataSize = int(child.DataSize()) - 8
	switch v.DataType {
	case types.ItunesTypeJPEG:
		v.ImageFormat = "JPEG"
	case types.ItunesTypePNG:
		v.ImageFormat = "PNG"
	default:
		return types.ItunesValueContent{}, false
	}
	return v, true
}

func (st *parseState) parseLeaf(box *types.Box, boxPath string) {
	box.Class = types.ClassLeaf
	if technicalTypes[box.Type] {
		box.Class = types.ClassTechnicalLeaf
	}

	dataSize := box.DataSize()
	if dataSize == 0 {
		return
	}
	if dataSize > bulkLeafThreshold {
		if box.Class != types.ClassTechnicalLeaf {
			box.Class = types.ClassBulkLeaf
		}
		return
	}

	data := make([]byte, dataSize)
	if err := st.sr.ReadAt(data, box.DataOffset(), "box payload"); err != nil {
		st.diag(types.SeverityError, box.DataOffset(), boxPath, "unreadable payload: %v", err)
		return
	}
	box.Data = data

	content, err := decodeContent(box.Type, data)
	if err != nil {
		st.diag(types.SeverityWarning, box.DataOffset(), boxPath, "undecodable payload: %v", err)
		return
	}
	box.Content = content
}

// boxTypeString decodes the 4 type bytes. 0xA9 is the MacRoman copyright
// sign used by iTunes metadata codes and maps to '©'; other non-printable
// bytes become '?'.
func boxTypeString(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == 0xA9:
			sb.WriteRune('©')
		case c >= 0x20 && c <= 0x7E:
			sb.WriteByte(c)
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

func joinPath(parent, boxType string) string {
	if parent == "" {
		return boxType
	}
	return parent + "/" + boxType
}

// pruneTechnical filters sample-table bookkeeping leaves out of the tree.
func pruneTechnical(boxes []types.Box) []types.Box {
	kept := boxes[:0]
	for _, b := range boxes {
		if b.Class == types.ClassTechnicalLeaf {
			continue
		}
		b.Children = pruneTechnical(b.Children)
		kept = append(kept, b)
	}
	return kept
}

// dropBoxData clears buffered payloads once decoding is done; the decoded
// content variants keep what the caller can still inspect.
func dropBoxData(boxes []types.Box) {
	for i := range boxes {
		boxes[i].Data = nil
		dropBoxData(boxes[i].Children)
	}
}
