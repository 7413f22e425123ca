package id3v2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binutil "github.com/simonhull/mediadissect/internal/binary"
	"github.com/simonhull/mediadissect/internal/types"
)

func synchsafe(v uint32) []byte {
	b := binutil.EncodeSynchsafe(v)
	return b[:]
}

// buildFrame assembles a 10-byte frame header plus payload, sized per version.
func buildFrame(id string, payload []byte, version byte) []byte {
	out := []byte(id)
	if version >= 4 {
		out = append(out, synchsafe(uint32(len(payload)))...)
	} else {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(payload)))
		out = append(out, size[:]...)
	}
	out = append(out, 0x00, 0x00) // flags
	return append(out, payload...)
}

// buildTag assembles a complete tag: header, declared size covering body.
func buildTag(version, flags byte, body []byte) []byte {
	out := []byte("ID3")
	out = append(out, version, 0x00, flags)
	if version >= 4 {
		out = append(out, synchsafe(uint32(len(body)))...)
	} else {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(body)))
		out = append(out, size[:]...)
	}
	return append(out, body...)
}

func dissect(t *testing.T, data []byte, opts types.Options) *types.Result {
	t.Helper()
	result, err := (&Dissector{}).Dissect(bytes.NewReader(data), int64(len(data)), "test.mp3", opts)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func textPayload(enc byte, s string) []byte {
	return append([]byte{enc}, s...)
}

func TestDissect_SequentialFrames(t *testing.T) {
	body := buildFrame("TIT2", textPayload(3, "Title"), 4)
	body = append(body, buildFrame("TPE1", textPayload(3, "Artist"), 4)...)
	body = append(body, buildFrame("TALB", textPayload(3, "Album"), 4)...)
	data := buildTag(4, 0, body)

	result := dissect(t, data, types.Options{})
	require.NotNil(t, result.Tag)
	require.Len(t, result.Tag.Frames, 3)

	ids := []string{"TIT2", "TPE1", "TALB"}
	offset := int64(10)
	for i, frame := range result.Tag.Frames {
		assert.Equal(t, ids[i], frame.ID)
		assert.Equal(t, offset, frame.Offset, "frame %s offset", frame.ID)
		offset += 10 + int64(frame.Size)
	}
	assert.Empty(t, result.Diagnostics)
}

func TestDissect_HelloTitle(t *testing.T) {
	// Declared tag size 128, one title frame of size 10: UTF-8 marker,
	// "Hello", then NUL padding inside the frame.
	payload := append([]byte{0x03}, "Hello"...)
	payload = append(payload, 0x00, 0x00, 0x00, 0x00)
	frame := buildFrame("TIT2", payload, 4)

	data := []byte("ID3")
	data = append(data, 0x04, 0x00, 0x00)
	data = append(data, synchsafe(128)...)
	data = append(data, frame...)
	data = append(data, make([]byte, 128-len(frame))...) // tag padding

	result := dissect(t, data, types.Options{})
	require.NotNil(t, result.Tag)
	require.Len(t, result.Tag.Frames, 1)

	content, ok := result.Tag.Frames[0].Content.(types.TextContent)
	require.True(t, ok, "content type %T", result.Tag.Frames[0].Content)
	assert.Equal(t, types.EncodingUTF8, content.Encoding)
	assert.Equal(t, "Hello", content.Text)
}

func TestDissect_OversizeTagFatal(t *testing.T) {
	data := []byte("ID3")
	data = append(data, 0x04, 0x00, 0x00)
	data = append(data, synchsafe(150_000_000)...)
	data = append(data, make([]byte, 64)...)

	result := dissect(t, data, types.Options{})
	require.NotNil(t, result.Tag)
	assert.Empty(t, result.Tag.Frames)

	sev, ok := result.MaxSeverity()
	require.True(t, ok)
	assert.Equal(t, types.SeverityFatal, sev)
}

func TestDissect_FrameSizeExceedsRemaining(t *testing.T) {
	good := buildFrame("TIT2", textPayload(3, "Kept"), 4)
	bad := []byte("TPE1")
	bad = append(bad, synchsafe(4096)...) // way past the end of the tag
	bad = append(bad, 0x00, 0x00)
	body := append(good, bad...)
	data := buildTag(4, 0, body)

	result := dissect(t, data, types.Options{})
	require.NotNil(t, result.Tag)
	require.Len(t, result.Tag.Frames, 1, "frames before the bad one are retained")
	assert.Equal(t, "TIT2", result.Tag.Frames[0].ID)

	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, types.SeverityError, result.Diagnostics[0].Severity)
	assert.Contains(t, result.Diagnostics[0].Message, "exceeds")
}

func TestDissect_Chapter(t *testing.T) {
	title := buildFrame("TIT2", textPayload(3, "Intro"), 4)
	picture := buildFrame("APIC", append([]byte{0x00}, []byte("image/png\x00\x03\x00PNGDATA")...), 4)

	payload := []byte("chp1\x00")
	var ms [4]byte
	binary.BigEndian.PutUint32(ms[:], 0)
	payload = append(payload, ms[:]...) // start ms
	binary.BigEndian.PutUint32(ms[:], 60_000)
	payload = append(payload, ms[:]...) // end ms
	payload = append(payload, 0xFF, 0xFF, 0xFF, 0xFF)
	payload = append(payload, 0xFF, 0xFF, 0xFF, 0xFF)
	payload = append(payload, title...)
	payload = append(payload, picture...)

	data := buildTag(4, 0, buildFrame("CHAP", payload, 4))

	result := dissect(t, data, types.Options{RawData: true})
	require.NotNil(t, result.Tag)
	require.Len(t, result.Tag.Frames, 1)

	chap, ok := result.Tag.Frames[0].Content.(types.ChapterContent)
	require.True(t, ok, "content type %T", result.Tag.Frames[0].Content)
	assert.Equal(t, "chp1", chap.ElementID)
	assert.Equal(t, uint32(0), chap.StartMS)
	assert.Equal(t, uint32(60_000), chap.EndMS)
	assert.False(t, chap.OffsetsUsed())
	require.Len(t, chap.Frames, 2)

	sub, ok := chap.Frames[0].Content.(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Intro", sub.Text)
	assert.Equal(t, int64(0), chap.Frames[0].Offset, "embedded offsets are payload-relative")

	pic, ok := chap.Frames[1].Content.(types.PictureContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", pic.MIMEType)
	assert.Equal(t, byte(0x03), pic.PictureType)
	assert.Equal(t, []byte("PNGDATA"), pic.Data)
}

func TestDissect_ChapterNotExpandedTwice(t *testing.T) {
	// A CHAP embedded inside a CHAP stays binary - one expansion level only.
	inner := []byte("in\x00")
	inner = append(inner, make([]byte, 16)...)
	innerFrame := buildFrame("CHAP", inner, 4)

	outer := []byte("out\x00")
	outer = append(outer, make([]byte, 16)...)
	outer = append(outer, innerFrame...)

	data := buildTag(4, 0, buildFrame("CHAP", outer, 4))

	result := dissect(t, data, types.Options{})
	chap, ok := result.Tag.Frames[0].Content.(types.ChapterContent)
	require.True(t, ok)
	require.Len(t, chap.Frames, 1)
	assert.IsType(t, types.BinaryContent{}, chap.Frames[0].Content)
}

func TestDissect_TableOfContents(t *testing.T) {
	payload := []byte("toc1\x00")
	payload = append(payload, 0x03) // top-level + ordered
	payload = append(payload, 2)    // child count
	payload = append(payload, "chp1\x00chp2\x00"...)
	data := buildTag(4, 0, buildFrame("CTOC", payload, 4))

	result := dissect(t, data, types.Options{})
	toc, ok := result.Tag.Frames[0].Content.(types.TOCContent)
	require.True(t, ok)
	assert.Equal(t, "toc1", toc.ElementID)
	assert.True(t, toc.TopLevel)
	assert.True(t, toc.Ordered)
	assert.Equal(t, []string{"chp1", "chp2"}, toc.ChildIDs)
	assert.Empty(t, toc.Frames)
}

func TestDissect_V23PlainSizes(t *testing.T) {
	// 300-byte payload: a synchsafe reading of 0x0000012C would yield 172,
	// so a correct parse proves the plain big-endian path.
	payload := textPayload(0, string(bytes.Repeat([]byte{'x'}, 299)))
	data := buildTag(3, 0, buildFrame("TIT2", payload, 3))

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Equal(t, uint32(300), result.Tag.Frames[0].Size)
	assert.Empty(t, result.Diagnostics)
}

func TestDissect_VersionGatedFrame(t *testing.T) {
	// TDRC is v2.4-only; inside a v2.3 tag it dissects as binary with a
	// warning instead of killing the loop.
	body := buildFrame("TDRC", textPayload(0, "2024"), 3)
	body = append(body, buildFrame("TIT2", textPayload(0, "Still here"), 3)...)
	data := buildTag(3, 0, body)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 2)
	assert.IsType(t, types.BinaryContent{}, result.Tag.Frames[0].Content)
	assert.IsType(t, types.TextContent{}, result.Tag.Frames[1].Content)

	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[0].Message, "not defined for ID3v2.3")
}

func TestDissect_UnknownFrameID(t *testing.T) {
	body := buildFrame("XYZ0", []byte{0x01, 0x02}, 4)
	data := buildTag(4, 0, body)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.IsType(t, types.BinaryContent{}, result.Tag.Frames[0].Content)
	assert.Empty(t, result.Diagnostics, "unknown IDs are not diagnostics")
}

func TestDissect_UTF16Text(t *testing.T) {
	// "Hi" as UTF-16LE with BOM
	payload := []byte{0x01, 0xFF, 0xFE, 'H', 0x00, 'i', 0x00}
	data := buildTag(4, 0, buildFrame("TIT2", payload, 4))

	result := dissect(t, data, types.Options{})
	content, ok := result.Tag.Frames[0].Content.(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Hi", content.Text)
}

func TestDissect_MultiValueText(t *testing.T) {
	payload := textPayload(3, "Rock\x00Electronic")
	data := buildTag(4, 0, buildFrame("TCON", payload, 4))

	result := dissect(t, data, types.Options{})
	content, ok := result.Tag.Frames[0].Content.(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, []string{"Rock", "Electronic"}, content.Strings)
	assert.Equal(t, "Rock", content.Text)
}

func TestDissect_Comment(t *testing.T) {
	payload := []byte{0x03}
	payload = append(payload, "eng"...)
	payload = append(payload, "desc\x00the comment"...)
	data := buildTag(4, 0, buildFrame("COMM", payload, 4))

	result := dissect(t, data, types.Options{})
	content, ok := result.Tag.Frames[0].Content.(types.CommentContent)
	require.True(t, ok)
	assert.Equal(t, "eng", content.Language)
	assert.Equal(t, "desc", content.Description)
	assert.Equal(t, "the comment", content.Text)
}

func TestDissect_UserTextAndURL(t *testing.T) {
	body := buildFrame("TXXX", []byte("\x03NARRATOR\x00Jane Doe"), 4)
	body = append(body, buildFrame("WXXX", []byte("\x00Feed\x00https://example.com/rss"), 4)...)
	body = append(body, buildFrame("WOAF", []byte("https://example.com/audio.mp3"), 4)...)
	body = append(body, buildFrame("UFID", []byte("owner@example.com\x00\x01\x02\x03"), 4)...)
	data := buildTag(4, 0, body)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 4)

	ut, ok := result.Tag.Frames[0].Content.(types.UserTextContent)
	require.True(t, ok)
	assert.Equal(t, "NARRATOR", ut.Description)
	assert.Equal(t, "Jane Doe", ut.Value)

	wu, ok := result.Tag.Frames[1].Content.(types.UserURLContent)
	require.True(t, ok)
	assert.Equal(t, "Feed", wu.Description)
	assert.Equal(t, "https://example.com/rss", wu.URL)

	u, ok := result.Tag.Frames[2].Content.(types.URLContent)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/audio.mp3", u.URL)

	ufid, ok := result.Tag.Frames[3].Content.(types.UniqueFileIDContent)
	require.True(t, ok)
	assert.Equal(t, "owner@example.com", ufid.Owner)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, ufid.Identifier)
}

func TestDissect_UnsyncTagV23(t *testing.T) {
	// v2.3 unsynchronizes the whole tag: frame payload 0xFF 0xE0 0x42 is
	// stored as 0xFF 0x00 0xE0 0x42 with the tag-level flag set, and frame
	// sizes refer to the de-stuffed data.
	frame := buildFrame("PRIV", []byte{0xFF, 0xE0, 0x42}, 3)
	stuffed := binutil.RemoveUnsync(frame) // sanity: frame has no FF 00 pairs
	require.Equal(t, frame, stuffed)

	var onDisk []byte
	for i := 0; i < len(frame); i++ {
		onDisk = append(onDisk, frame[i])
		if frame[i] == 0xFF {
			onDisk = append(onDisk, 0x00)
		}
	}

	data := buildTag(3, types.TagFlagUnsync, onDisk)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Equal(t, []byte{0xFF, 0xE0, 0x42}, result.Tag.Frames[0].Data)
}

func TestDissect_UnsyncBothFlagsV24(t *testing.T) {
	// A conformant v2.4 writer sets the tag-level unsync flag AND each
	// frame's flag; frame sizes count the stuffed on-disk bytes. Stuffing
	// must come out exactly once, per frame.
	payload := []byte{0xFF, 0x00, 0x00, 0x42}
	out := []byte("PRIV")
	out = append(out, synchsafe(uint32(len(payload)))...)
	out = append(out, 0x00, frameUnsyncFlag)
	out = append(out, payload...)
	data := buildTag(4, types.TagFlagUnsync, out)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Equal(t, []byte{0xFF, 0x00, 0x42}, result.Tag.Frames[0].Data)
	assert.Empty(t, result.Diagnostics)
}

func TestDissect_PerFrameUnsync(t *testing.T) {
	payload := []byte{0xFF, 0x00, 0xE0}
	out := []byte("PRIV")
	out = append(out, synchsafe(uint32(len(payload)))...)
	out = append(out, 0x00, frameUnsyncFlag)
	out = append(out, payload...)
	data := buildTag(4, 0, out)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Equal(t, []byte{0xFF, 0xE0}, result.Tag.Frames[0].Data)
}

func TestDissect_ExtendedHeader(t *testing.T) {
	// v2.4 extended header: 6 payload bytes after the 4-byte size field.
	ext := append(synchsafe(6), make([]byte, 6)...)
	body := append(ext, buildFrame("TIT2", textPayload(3, "After ext"), 4)...)
	data := buildTag(4, types.TagFlagExtendedHeader, body)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Equal(t, uint32(10), result.Tag.ExtendedSize)

	content, ok := result.Tag.Frames[0].Content.(types.TextContent)
	require.True(t, ok)
	assert.Equal(t, "After ext", content.Text)
}

func TestDissect_Padding(t *testing.T) {
	body := buildFrame("TIT2", textPayload(3, "Padded"), 4)
	body = append(body, make([]byte, 64)...)
	data := buildTag(4, 0, body)

	result := dissect(t, data, types.Options{})
	require.Len(t, result.Tag.Frames, 1)
	assert.Empty(t, result.Diagnostics)
}

func TestDissect_BareMPEGStream(t *testing.T) {
	data := []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	result := dissect(t, data, types.Options{})
	assert.Nil(t, result.Tag)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, types.SeverityInfo, result.Diagnostics[0].Severity)
}

func TestDissect_NotID3(t *testing.T) {
	data := []byte("definitely not a tag")

	_, err := (&Dissector{}).Dissect(bytes.NewReader(data), int64(len(data)), "test.mp3", types.Options{})
	require.Error(t, err)
	assert.IsType(t, &types.StructuralError{}, err)
}

func TestDissect_UnknownVersion(t *testing.T) {
	data := buildTag(2, 0, make([]byte, 16))

	result := dissect(t, data, types.Options{})
	require.NotNil(t, result.Tag)
	assert.Equal(t, byte(2), result.Tag.Version)
	assert.Empty(t, result.Tag.Frames)
	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[0].Message, "unsupported ID3v2 version")
}

func TestDissect_Strict(t *testing.T) {
	good := buildFrame("TIT2", textPayload(3, "ok"), 4)
	bad := []byte("TPE1")
	bad = append(bad, synchsafe(4096)...)
	bad = append(bad, 0x00, 0x00)
	data := buildTag(4, 0, append(good, bad...))

	result, err := (&Dissector{}).Dissect(bytes.NewReader(data), int64(len(data)), "test.mp3", types.Options{Strict: true})
	require.Error(t, err)
	require.NotNil(t, result, "strict mode still returns the partial result")
	assert.Len(t, result.Tag.Frames, 1)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Title/songname/content description", Describe("TIT2"))
	assert.Equal(t, "Chapter frame", Describe("CHAP"))
	assert.Equal(t, "Unknown frame type", Describe("ZZZZ"))
}

func TestValidFrameID(t *testing.T) {
	assert.True(t, ValidFrameID("TYER", 3))
	assert.False(t, ValidFrameID("TYER", 4))
	assert.True(t, ValidFrameID("TDRC", 4))
	assert.False(t, ValidFrameID("TDRC", 3))
	assert.True(t, ValidFrameID("CHAP", 3))
	assert.True(t, ValidFrameID("CHAP", 4))
	assert.False(t, ValidFrameID("TIT2", 5))
}

func TestPictureTypeName(t *testing.T) {
	assert.Equal(t, "Cover (front)", PictureTypeName(0x03))
	assert.Equal(t, "A bright coloured fish", PictureTypeName(0x11))
	assert.Equal(t, "Unknown", PictureTypeName(0xC0))
}
