package id3v2

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/simonhull/mediadissect/internal/types"
)

// CTOC flag bits.
const (
	tocFlagTopLevel = 0x01
	tocFlagOrdered  = 0x02
)

// readElementID consumes a NUL-terminated ISO-8859-1 element ID.
func readElementID(data []byte) (id string, rest []byte, err error) {
	idx := bytes.IndexByte(data, 0)
	if idx < 0 {
		return "", nil, fmt.Errorf("element ID not NUL-terminated")
	}
	return latin1(data[:idx]), data[idx+1:], nil
}

// parseChapter handles CHAP: element ID, start/end times in milliseconds,
// start/end byte offsets (0xFFFFFFFF when unused), then embedded sub-frames
// parsed with the regular frame loop, offsets relative to this payload.
func (st *parseState) parseChapter(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("chapter frame payload is empty")
	}

	elementID, rest, err := readElementID(f.Data)
	if err != nil {
		return nil, fmt.Errorf("chapter frame: %w", err)
	}
	if len(rest) < 16 {
		return nil, fmt.Errorf("chapter frame truncated before time/offset fields")
	}

	content := types.ChapterContent{
		ElementID:   elementID,
		StartMS:     binary.BigEndian.Uint32(rest[0:4]),
		EndMS:       binary.BigEndian.Uint32(rest[4:8]),
		StartOffset: binary.BigEndian.Uint32(rest[8:12]),
		EndOffset:   binary.BigEndian.Uint32(rest[12:16]),
	}

	if sub := rest[16:]; len(sub) > 0 {
		content.Frames = parseFrames(sub, 0, st, true)
	}
	return content, nil
}

// parseTOC handles CTOC: element ID, flags, child count, NUL-terminated
// child element IDs, then embedded sub-frames like CHAP.
func (st *parseState) parseTOC(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("table of contents frame payload is empty")
	}

	elementID, rest, err := readElementID(f.Data)
	if err != nil {
		return nil, fmt.Errorf("table of contents frame: %w", err)
	}
	if len(rest) < 2 {
		return nil, fmt.Errorf("table of contents frame truncated before flags")
	}

	flags := rest[0]
	childCount := int(rest[1])
	rest = rest[2:]

	childIDs := make([]string, 0, childCount)
	for i := 0; i < childCount; i++ {
		var child string
		child, rest, err = readElementID(rest)
		if err != nil {
			return nil, fmt.Errorf("table of contents child %d: %w", i, err)
		}
		childIDs = append(childIDs, child)
	}

	content := types.TOCContent{
		ElementID: elementID,
		TopLevel:  flags&tocFlagTopLevel != 0,
		Ordered:   flags&tocFlagOrdered != 0,
		ChildIDs:  childIDs,
	}

	if len(rest) > 0 {
		content.Frames = parseFrames(rest, 0, st, true)
	}
	return content, nil
}
