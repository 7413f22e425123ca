package id3v2

import (
	"encoding/binary"
	"fmt"
	"strings"

	binutil "github.com/simonhull/mediadissect/internal/binary"
	"github.com/simonhull/mediadissect/internal/types"
)

// frameUnsyncFlag is the ID3v2.4 per-frame unsynchronization flag bit.
const frameUnsyncFlag = 0x0002

// parseState threads the diagnostics list through one tag's frame parsing.
type parseState struct {
	version byte
	diags   []types.Diagnostic
}

func (st *parseState) diag(sev types.Severity, off int64, where, format string, args ...any) {
	st.diags = append(st.diags, types.Diagnostic{
		Severity: sev,
		Offset:   off,
		Path:     where,
		Message:  fmt.Sprintf(format, args...),
	})
}

// validFrameIDChars reports whether all four ID bytes are uppercase
// letters or digits.
func validFrameIDChars(id []byte) bool {
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// isPadding reports whether the ID bytes are all zero.
func isPadding(id []byte) bool {
	return id[0] == 0 && id[1] == 0 && id[2] == 0 && id[3] == 0
}

// parseFrames runs the frame loop over a region of tag data.
//
// base is the absolute file offset of data[0] for top-level frames; embedded
// frames pass 0 so their offsets stay relative to the parent payload. The
// loop stops at padding, an invalid frame ID, or a size field that exceeds
// the remaining bytes - in the last case frames already parsed are kept and
// an Error diagnostic records why the loop halted.
func parseFrames(data []byte, base int64, st *parseState, embedded bool) []types.Frame {
	var frames []types.Frame
	pos := 0

	for pos+10 <= len(data) {
		idBytes := data[pos : pos+4]
		if isPadding(idBytes) || !validFrameIDChars(idBytes) {
			break
		}
		id := string(idBytes)

		size, ok := frameSize(data[pos+4:pos+8], st.version)
		if !ok {
			st.diag(types.SeverityWarning, base+int64(pos)+4, "id3v2/"+id,
				"frame size field violates synchsafe encoding, using big-endian value %d", size)
		}
		flags := binary.BigEndian.Uint16(data[pos+8 : pos+10])

		if pos+10+int(size) > len(data) {
			st.diag(types.SeverityError, base+int64(pos), "id3v2/"+id,
				"declared frame size %d exceeds the %d bytes remaining; stopping frame parsing", size, len(data)-pos-10)
			break
		}

		payload := make([]byte, size)
		copy(payload, data[pos+10:pos+10+int(size)])

		if st.version >= 4 && flags&frameUnsyncFlag != 0 {
			payload = binutil.RemoveUnsync(payload)
		}

		frame := types.Frame{
			ID:     id,
			Size:   size,
			Flags:  flags,
			Offset: base + int64(pos),
			Data:   payload,
		}
		st.parseContent(&frame, embedded)

		frames = append(frames, frame)
		pos += 10 + int(size)
	}

	return frames
}

// frameSize decodes a frame size field: synchsafe for v2.4, plain
// big-endian for v2.3. ok is false on a v2.4 synchsafe violation.
func frameSize(b []byte, version byte) (uint32, bool) {
	if version >= 4 {
		return binutil.DecodeSynchsafe(b)
	}
	return binary.BigEndian.Uint32(b), true
}

// parseContent decodes a frame's payload into its content variant.
// Recognized frames whose payload fails structural expectations degrade to
// Binary plus a diagnostic; the tag is never aborted from here.
func (st *parseState) parseContent(f *types.Frame, embedded bool) {
	if !ValidFrameID(f.ID, st.version) {
		// An ID that belongs to the other ID3v2 version is worth a note;
		// a genuinely unknown ID is just binary content.
		other := byte(3 + 4 - st.version)
		if ValidFrameID(f.ID, other) {
			st.diag(types.SeverityWarning, f.Offset, "id3v2/"+f.ID,
				"frame ID is not defined for ID3v2.%d", st.version)
		}
		f.Content = types.BinaryContent{Data: f.Data}
		return
	}

	var (
		content types.FrameContent
		err     error
	)

	switch {
	case f.ID == "CHAP":
		if embedded {
			// Chapter content is expanded one level only
			content = types.BinaryContent{Data: f.Data}
		} else {
			content, err = st.parseChapter(f)
		}
	case f.ID == "CTOC":
		if embedded {
			content = types.BinaryContent{Data: f.Data}
		} else {
			content, err = st.parseTOC(f)
		}
	case f.ID == "TXXX":
		content, err = st.parseUserText(f)
	case strings.HasPrefix(f.ID, "T"):
		content, err = st.parseText(f)
	case f.ID == "WXXX":
		content, err = st.parseUserURL(f)
	case strings.HasPrefix(f.ID, "W"):
		content, err = parseURL(f)
	case f.ID == "COMM" || f.ID == "USLT":
		content, err = st.parseComment(f)
	case f.ID == "APIC":
		content, err = st.parsePicture(f)
	case f.ID == "UFID":
		content, err = parseUniqueFileID(f)
	default:
		content = types.BinaryContent{Data: f.Data}
	}

	if err != nil {
		st.diag(types.SeverityWarning, f.Offset, "id3v2/"+f.ID, "%v", err)
		content = types.BinaryContent{Data: f.Data}
	}
	f.Content = content
}

// frameEncoding reads and validates the leading encoding byte of a frame
// payload. An out-of-range byte or one not legal for the tag version emits
// an EncodingViolation-style diagnostic; decoding continues best-effort.
func (st *parseState) frameEncoding(f *types.Frame, b byte) types.TextEncoding {
	enc := types.TextEncoding(b)
	if b > 3 {
		st.diag(types.SeverityWarning, f.Offset, "id3v2/"+f.ID,
			"unrecognized text encoding byte 0x%02X, decoding as ISO-8859-1", b)
		return enc
	}
	if !enc.ValidForVersion(st.version) {
		st.diag(types.SeverityWarning, f.Offset, "id3v2/"+f.ID,
			"text encoding %s is not valid for ID3v2.%d", enc, st.version)
	}
	return enc
}

// parseText handles text information frames (T*** except TXXX).
func (st *parseState) parseText(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) < 1 {
		return nil, fmt.Errorf("text frame payload is empty")
	}

	enc := st.frameEncoding(f, f.Data[0])
	strs := splitStrings(f.Data[1:], enc)

	primary := ""
	if len(strs) > 0 {
		primary = strs[0]
	}
	return types.TextContent{Encoding: enc, Text: primary, Strings: strs}, nil
}

// parseURL handles URL link frames (W*** except WXXX). Always ISO-8859-1.
func parseURL(f *types.Frame) (types.FrameContent, error) {
	data := f.Data
	if idx := findTerminator(data, types.EncodingLatin1); idx >= 0 {
		data = data[:idx]
	}
	return types.URLContent{URL: latin1(data)}, nil
}

// parseUserText handles TXXX: encoding + description + NUL + value.
func (st *parseState) parseUserText(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) < 2 {
		return nil, fmt.Errorf("user text frame payload too short")
	}

	enc := st.frameEncoding(f, f.Data[0])
	desc, rest := splitTerminated(f.Data[1:], enc)
	return types.UserTextContent{
		Encoding:    enc,
		Description: desc,
		Value:       decodeString(rest, enc),
	}, nil
}

// parseUserURL handles WXXX: the description uses the declared encoding,
// the URL itself is always ISO-8859-1.
func (st *parseState) parseUserURL(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) < 2 {
		return nil, fmt.Errorf("user URL frame payload too short")
	}

	enc := st.frameEncoding(f, f.Data[0])
	desc, rest := splitTerminated(f.Data[1:], enc)
	return types.UserURLContent{
		Encoding:    enc,
		Description: desc,
		URL:         latin1(rest),
	}, nil
}

// parseComment handles COMM and USLT: encoding + 3-byte language +
// description + NUL + text.
func (st *parseState) parseComment(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) < 4 {
		return nil, fmt.Errorf("comment frame payload too short")
	}

	enc := st.frameEncoding(f, f.Data[0])
	lang := latin1(f.Data[1:4])
	desc, rest := splitTerminated(f.Data[4:], enc)
	return types.CommentContent{
		Encoding:    enc,
		Language:    lang,
		Description: desc,
		Text:        decodeString(rest, enc),
	}, nil
}

// parsePicture handles APIC: encoding + MIME + NUL + picture type +
// description + terminator + image bytes.
func (st *parseState) parsePicture(f *types.Frame) (types.FrameContent, error) {
	if len(f.Data) < 2 {
		return nil, fmt.Errorf("picture frame payload too short")
	}

	enc := st.frameEncoding(f, f.Data[0])
	data := f.Data[1:]

	// MIME type is always ISO-8859-1
	mimeEnd := findTerminator(data, types.EncodingLatin1)
	if mimeEnd < 0 {
		return nil, fmt.Errorf("picture frame MIME type not NUL-terminated")
	}
	mime := latin1(data[:mimeEnd])
	data = data[mimeEnd+1:]

	if len(data) < 1 {
		return nil, fmt.Errorf("picture frame missing picture type")
	}
	picType := data[0]
	data = data[1:]

	descEnd := findTerminator(data, enc)
	if descEnd < 0 {
		return nil, fmt.Errorf("picture frame description not terminated")
	}
	desc := decodeString(data[:descEnd], enc)
	data = data[descEnd+enc.TerminatorLen():]

	return types.PictureContent{
		Encoding:    enc,
		MIMEType:    mime,
		PictureType: picType,
		Description: desc,
		Data:        data,
	}, nil
}

// parseUniqueFileID handles UFID: owner string + NUL + identifier bytes.
func parseUniqueFileID(f *types.Frame) (types.FrameContent, error) {
	idx := findTerminator(f.Data, types.EncodingLatin1)
	if idx < 0 {
		return nil, fmt.Errorf("unique file ID owner not NUL-terminated")
	}
	return types.UniqueFileIDContent{
		Owner:      latin1(f.Data[:idx]),
		Identifier: f.Data[idx+1:],
	}, nil
}
