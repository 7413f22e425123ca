package mediadissect_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	id3v2lib "github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/mediadissect"
)

// synchsafe encodes a value into 4 bytes of 7 bits each.
func synchsafe(v uint32) []byte {
	return []byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// buildID3v4 assembles a v2.4 tag followed by a token of MPEG audio.
func buildID3v4(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	file := []byte("ID3")
	file = append(file, 4, 0, 0)
	file = append(file, synchsafe(uint32(len(body)))...)
	file = append(file, body...)
	return append(file, 0xFF, 0xFB, 0x90, 0x00)
}

func textFrame(id, text string) []byte {
	payload := append([]byte{0x03}, text...)
	frame := []byte(id)
	frame = append(frame, synchsafe(uint32(len(payload)))...)
	frame = append(frame, 0, 0)
	return append(frame, payload...)
}

func boxBytes(boxType string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	buf := make([]byte, 4, 8+len(body))
	binary.BigEndian.PutUint32(buf, uint32(8+len(body)))
	buf = append(buf, boxType...)
	return append(buf, body...)
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mvhdPayload() []byte {
	p := make([]byte, 26)
	binary.BigEndian.PutUint32(p[12:], 1000)       // timescale
	binary.BigEndian.PutUint32(p[16:], 60_000)     // duration
	binary.BigEndian.PutUint32(p[20:], 0x00010000) // rate 1.0
	return p
}

func m4aBytes() []byte {
	ftyp := boxBytes("ftyp", []byte("M4A "), make([]byte, 4), []byte("isom"), []byte("mp42"))
	moov := boxBytes("moov", boxBytes("mvhd", mvhdPayload()))
	return append(ftyp, moov...)
}

func TestOpen_ID3v2(t *testing.T) {
	path := writeTemp(t, "song.mp3",
		buildID3v4(textFrame("TIT2", "Hello"), textFrame("TPE1", "Artist")))

	result, err := mediadissect.Open(path)
	require.NoError(t, err)

	assert.Equal(t, mediadissect.FormatID3v2, result.Format)
	require.NotNil(t, result.Tag)
	assert.Equal(t, byte(4), result.Tag.Version)
	require.Len(t, result.Tag.Frames, 2)

	title := result.FindFrame("TIT2")
	require.NotNil(t, title)
	content, ok := title.Content.(mediadissect.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Hello", content.Text)
	assert.Equal(t, mediadissect.EncodingUTF8, content.Encoding)
}

func TestOpen_ISOBMFF(t *testing.T) {
	path := writeTemp(t, "song.m4a", m4aBytes())

	result, err := mediadissect.Open(path)
	require.NoError(t, err)

	assert.Equal(t, mediadissect.FormatISOBMFF, result.Format)
	require.Len(t, result.Boxes, 2)

	mvhd := result.FindBox("moov", "mvhd")
	require.NotNil(t, mvhd)
	content, ok := mvhd.Content.(mediadissect.MovieHeaderContent)
	require.True(t, ok)
	assert.Equal(t, uint32(1000), content.Timescale)
	assert.Equal(t, uint64(60_000), content.Duration)
}

func TestOpenReader(t *testing.T) {
	data := m4aBytes()

	result, err := mediadissect.OpenReader(bytes.NewReader(data), int64(len(data)), "stream.m4a")
	require.NoError(t, err)
	assert.Equal(t, "stream.m4a", result.Path)
	assert.Equal(t, mediadissect.FormatISOBMFF, result.Format)
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("not a media file at all"))

	_, err := mediadissect.Open(path)
	require.Error(t, err)

	var unsupported *mediadissect.UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := mediadissect.Open(filepath.Join(t.TempDir(), "nope.mp3"))
	assert.Error(t, err)
}

func TestOpen_StrictParsing(t *testing.T) {
	// A frame claiming far more bytes than the tag holds.
	corrupt := []byte("TIT2")
	corrupt = append(corrupt, synchsafe(4096)...)
	corrupt = append(corrupt, 0, 0)
	path := writeTemp(t, "bad.mp3", buildID3v4(corrupt))

	_, err := mediadissect.Open(path, mediadissect.WithStrictParsing())
	require.Error(t, err)

	var structural *mediadissect.StructuralError
	assert.True(t, errors.As(err, &structural))

	// Without strict parsing the same file yields a diagnosed Result.
	result, err := mediadissect.Open(path)
	require.NoError(t, err)
	sev, ok := result.MaxSeverity()
	require.True(t, ok)
	assert.Equal(t, mediadissect.SeverityError, sev)
}

func TestOpenMany(t *testing.T) {
	paths := []string{
		writeTemp(t, "a.mp3", buildID3v4(textFrame("TIT2", "First"))),
		writeTemp(t, "b.m4a", m4aBytes()),
		writeTemp(t, "c.mp3", buildID3v4(textFrame("TIT2", "Third"))),
	}

	results, err := mediadissect.OpenMany(context.Background(), paths...)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results come back in input order.
	assert.Equal(t, mediadissect.FormatID3v2, results[0].Format)
	assert.Equal(t, mediadissect.FormatISOBMFF, results[1].Format)
	assert.Equal(t, "Third", results[2].FindFrame("TIT2").Content.(mediadissect.TextContent).Text)
}

func TestOpenMany_FailureCancels(t *testing.T) {
	paths := []string{
		writeTemp(t, "good.mp3", buildID3v4(textFrame("TIT2", "OK"))),
		filepath.Join(t.TempDir(), "missing.mp3"),
	}

	results, err := mediadissect.OpenMany(context.Background(), paths...)
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestOpenMany_Empty(t *testing.T) {
	results, err := mediadissect.OpenMany(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestDetectFormat(t *testing.T) {
	data := m4aBytes()
	format, err := mediadissect.DetectFormat(bytes.NewReader(data), int64(len(data)), "x.m4a")
	require.NoError(t, err)
	assert.Equal(t, mediadissect.FormatISOBMFF, format)
}

// Tags written by the widely used id3v2 writer library should dissect
// back to the same values.
func TestOpen_TagWrittenByID3v2Library(t *testing.T) {
	path := writeTemp(t, "written.mp3", []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})

	tag, err := id3v2lib.Open(path, id3v2lib.Options{Parse: false})
	require.NoError(t, err)
	tag.SetTitle("Round Trip")
	tag.SetArtist("The Writers")
	tag.AddCommentFrame(id3v2lib.CommentFrame{
		Encoding:    id3v2lib.EncodingUTF8,
		Language:    "eng",
		Description: "note",
		Text:        "written by another library",
	})
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())

	result, err := mediadissect.Open(path)
	require.NoError(t, err)
	require.NotNil(t, result.Tag)

	title := result.FindFrame("TIT2")
	require.NotNil(t, title)
	assert.Equal(t, "Round Trip", title.Content.(mediadissect.TextContent).Text)

	artist := result.FindFrame("TPE1")
	require.NotNil(t, artist)
	assert.Equal(t, "The Writers", artist.Content.(mediadissect.TextContent).Text)

	comment := result.FindFrame("COMM")
	require.NotNil(t, comment)
	cc, ok := comment.Content.(mediadissect.CommentContent)
	require.True(t, ok)
	assert.Equal(t, "eng", cc.Language)
	assert.Equal(t, "note", cc.Description)
	assert.Equal(t, "written by another library", cc.Text)
}
