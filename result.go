package mediadissect

import "github.com/simonhull/mediadissect/internal/types"

// Result is the complete outcome of dissecting one file.
type Result = types.Result

// Diagnostic records a non-fatal issue encountered during dissection.
type Diagnostic = types.Diagnostic

// Severity classifies how serious a diagnostic is.
type Severity = types.Severity

// Diagnostic severity levels, in increasing order.
const (
	SeverityInfo    = types.SeverityInfo
	SeverityWarning = types.SeverityWarning
	SeverityError   = types.SeverityError
	SeverityFatal   = types.SeverityFatal
)

// Tag is a complete ID3v2 tag.
type Tag = types.Tag

// Frame is a single ID3v2 frame.
type Frame = types.Frame

// TextEncoding identifies one of the four ID3v2 string encodings.
type TextEncoding = types.TextEncoding

// ID3v2 text encodings.
const (
	EncodingLatin1  = types.EncodingLatin1
	EncodingUTF16   = types.EncodingUTF16
	EncodingUTF16BE = types.EncodingUTF16BE
	EncodingUTF8    = types.EncodingUTF8
)

// Decoded ID3v2 frame payload variants.
type (
	FrameContent        = types.FrameContent
	TextContent         = types.TextContent
	URLContent          = types.URLContent
	UserTextContent     = types.UserTextContent
	UserURLContent      = types.UserURLContent
	CommentContent      = types.CommentContent
	PictureContent      = types.PictureContent
	UniqueFileIDContent = types.UniqueFileIDContent
	ChapterContent      = types.ChapterContent
	TOCContent          = types.TOCContent
	BinaryContent       = types.BinaryContent
)

// Box is a single ISOBMFF box.
type Box = types.Box

// BoxClass classifies how a box was handled during dissection.
type BoxClass = types.BoxClass

// Box handling classes.
const (
	ClassLeaf          = types.ClassLeaf
	ClassContainer     = types.ClassContainer
	ClassBulkLeaf      = types.ClassBulkLeaf
	ClassTechnicalLeaf = types.ClassTechnicalLeaf
)

// ItunesValueKind discriminates the decoded forms of an iTunes data box.
type ItunesValueKind = types.ItunesValueKind

// iTunes value kinds.
const (
	ItunesText        = types.ItunesText
	ItunesInteger     = types.ItunesInteger
	ItunesUnsigned    = types.ItunesUnsigned
	ItunesImage       = types.ItunesImage
	ItunesTrackNumber = types.ItunesTrackNumber
	ItunesDiskNumber  = types.ItunesDiskNumber
	ItunesBinary      = types.ItunesBinary
)

// ItunesDataTypeName returns the conventional name for an iTunes data box
// type code.
func ItunesDataTypeName(code byte) string {
	return types.ItunesDataTypeName(code)
}

// Decoded ISOBMFF box payload variants.
type (
	BoxContent           = types.BoxContent
	FileTypeContent      = types.FileTypeContent
	MovieHeaderContent   = types.MovieHeaderContent
	MediaHeaderContent   = types.MediaHeaderContent
	TrackHeaderContent   = types.TrackHeaderContent
	HandlerContent       = types.HandlerContent
	EditListContent      = types.EditListContent
	DataReferenceContent = types.DataReferenceContent
	ItunesValueContent   = types.ItunesValueContent
)
