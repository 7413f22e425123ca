package types

// TextEncoding identifies one of the four ID3v2 string encodings.
type TextEncoding byte

const (
	// EncodingLatin1 is ISO-8859-1, one byte per character.
	EncodingLatin1 TextEncoding = 0
	// EncodingUTF16 is UTF-16 with a leading byte order mark.
	EncodingUTF16 TextEncoding = 1
	// EncodingUTF16BE is UTF-16 big-endian without a byte order mark (v2.4 only).
	EncodingUTF16BE TextEncoding = 2
	// EncodingUTF8 is UTF-8 (v2.4 only).
	EncodingUTF8 TextEncoding = 3
)

// String returns the encoding's conventional name.
func (e TextEncoding) String() string {
	switch e {
	case EncodingLatin1:
		return "ISO-8859-1"
	case EncodingUTF16:
		return "UTF-16 with BOM"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF8:
		return "UTF-8"
	default:
		return "unknown"
	}
}

// ValidForVersion reports whether the encoding is legal in the given
// ID3v2 major version. UTF-16BE and UTF-8 were introduced with v2.4.
func (e TextEncoding) ValidForVersion(major byte) bool {
	switch e {
	case EncodingLatin1, EncodingUTF16:
		return true
	case EncodingUTF16BE, EncodingUTF8:
		return major >= 4
	default:
		return false
	}
}

// TerminatorLen returns the NUL terminator width in bytes for the encoding.
func (e TextEncoding) TerminatorLen() int {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		return 2
	}
	return 1
}

// Frame is a single ID3v2 frame as found in the file.
//
// Offset is the absolute file offset of the frame header for top-level
// frames, or the offset relative to the parent frame's payload for frames
// embedded in CHAP/CTOC content. Content is nil until (and unless) the
// payload was recognized and decoded; Data always holds the raw payload.
type Frame struct {
	// ID is the 4-character frame identifier, e.g. "TIT2", "CHAP".
	ID string

	// Size is the declared payload size, excluding the 10-byte header.
	Size uint32

	// Flags holds the raw frame flag bits; their meaning differs
	// between ID3v2.3 and ID3v2.4.
	Flags uint16

	// Offset of the frame header (see type comment).
	Offset int64

	// Data is the raw frame payload.
	Data []byte

	// Content is the decoded payload, one of the FrameContent variants.
	Content FrameContent
}

// FrameContent is the closed sum of decoded ID3v2 frame payloads.
//
// Exactly one variant is chosen per frame based on its ID; unrecognized or
// structurally broken payloads carry BinaryContent.
type FrameContent interface {
	isFrameContent()
}

// TextContent is a text information frame (T*** except TXXX).
// Text frames may pack several NUL-separated strings back to back.
type TextContent struct {
	Encoding TextEncoding
	Text     string   // first (primary) string
	Strings  []string // all strings in payload order
}

// URLContent is a URL link frame (W*** except WXXX). Always ISO-8859-1.
type URLContent struct {
	URL string
}

// UserTextContent is a user-defined text frame (TXXX).
type UserTextContent struct {
	Encoding    TextEncoding
	Description string
	Value       string
}

// UserURLContent is a user-defined URL frame (WXXX). The description uses
// the declared encoding; the URL itself is always ISO-8859-1.
type UserURLContent struct {
	Encoding    TextEncoding
	Description string
	URL         string
}

// CommentContent is a comment or lyrics frame (COMM, USLT).
type CommentContent struct {
	Encoding    TextEncoding
	Language    string // 3-byte ISO-639-2 code
	Description string
	Text        string
}

// PictureContent is an attached picture frame (APIC).
type PictureContent struct {
	Encoding    TextEncoding
	MIMEType    string
	PictureType byte
	Description string
	Data        []byte
}

// UniqueFileIDContent is a unique file identifier frame (UFID).
type UniqueFileIDContent struct {
	Owner      string
	Identifier []byte
}

// ChapterContent is a chapter frame (CHAP) from the Chapter Addendum.
//
// StartOffset and EndOffset are byte offsets into the audio stream;
// the value 0xFFFFFFFF means "not used".
type ChapterContent struct {
	ElementID   string
	StartMS     uint32
	EndMS       uint32
	StartOffset uint32
	EndOffset   uint32
	Frames      []Frame // embedded sub-frames, offsets relative to payload
}

// OffsetsUsed reports whether the byte offsets carry meaningful values.
func (c ChapterContent) OffsetsUsed() bool {
	return c.StartOffset != 0xFFFFFFFF && c.EndOffset != 0xFFFFFFFF
}

// TOCContent is a table of contents frame (CTOC) from the Chapter Addendum.
type TOCContent struct {
	ElementID string
	TopLevel  bool
	Ordered   bool
	ChildIDs  []string
	Frames    []Frame // embedded sub-frames, offsets relative to payload
}

// BinaryContent is the fallback for unknown frame IDs and for recognized
// frames whose payload failed structural expectations.
type BinaryContent struct {
	Data []byte
}

func (TextContent) isFrameContent()         {}
func (URLContent) isFrameContent()          {}
func (UserTextContent) isFrameContent()     {}
func (UserURLContent) isFrameContent()      {}
func (CommentContent) isFrameContent()      {}
func (PictureContent) isFrameContent()      {}
func (UniqueFileIDContent) isFrameContent() {}
func (ChapterContent) isFrameContent()      {}
func (TOCContent) isFrameContent()          {}
func (BinaryContent) isFrameContent()       {}

// Tag is a complete ID3v2 tag: header fields plus the frames in file order.
type Tag struct {
	// Version and Revision are the major and minor version bytes
	// from the header ("ID3", 0x04, 0x00 is version 2.4.0).
	Version  byte
	Revision byte

	// Flags is the raw header flags byte; bit meanings differ by version.
	Flags byte

	// Size is the declared tag size in bytes, excluding the 10-byte header.
	Size uint32

	// SizeFault is true when the size field violated synchsafe encoding
	// and Size is a best-effort big-endian reinterpretation.
	SizeFault bool

	// ExtendedSize is the extended header size, 0 when absent.
	ExtendedSize uint32

	// Frames in file order.
	Frames []Frame
}

// Header flag bits shared by v2.3 and v2.4; footer is v2.4 only.
const (
	TagFlagUnsync         = 0x80
	TagFlagExtendedHeader = 0x40
	TagFlagExperimental   = 0x20
	TagFlagFooter         = 0x10
)

// Unsync reports whether the tag-level unsynchronization flag is set.
func (t *Tag) Unsync() bool { return t.Flags&TagFlagUnsync != 0 }

// HasExtendedHeader reports whether the extended header flag is set.
func (t *Tag) HasExtendedHeader() bool { return t.Flags&TagFlagExtendedHeader != 0 }

// Experimental reports whether the experimental indicator is set.
func (t *Tag) Experimental() bool { return t.Flags&TagFlagExperimental != 0 }

// HasFooter reports whether the v2.4 footer flag is set.
func (t *Tag) HasFooter() bool { return t.Version >= 4 && t.Flags&TagFlagFooter != 0 }
