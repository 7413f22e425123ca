package types

// BoxClass classifies how a box was handled during dissection.
type BoxClass int

const (
	// ClassLeaf is a plain leaf box whose payload was read.
	ClassLeaf BoxClass = iota
	// ClassContainer is a structural container whose children were parsed.
	ClassContainer
	// ClassBulkLeaf is a leaf whose payload exceeded the bulk threshold
	// and was skipped rather than buffered (e.g. mdat).
	ClassBulkLeaf
	// ClassTechnicalLeaf is a small leaf of sample-table bookkeeping
	// that is omitted from the outward tree unless requested.
	ClassTechnicalLeaf
)

// String returns the class name.
func (c BoxClass) String() string {
	switch c {
	case ClassLeaf:
		return "leaf"
	case ClassContainer:
		return "container"
	case ClassBulkLeaf:
		return "bulk leaf"
	case ClassTechnicalLeaf:
		return "technical leaf"
	default:
		return "unknown"
	}
}

// Box is a single ISOBMFF box (atom).
//
// Type may contain the non-ASCII 0xA9 "copyright" byte used by iTunes
// metadata codes; it is carried as '©'. Size is the total box size
// including the header, taken from the extended 64-bit field when the
// 32-bit size field holds 1.
type Box struct {
	// Type is the 4-character box type code.
	Type string

	// Size is the total size in bytes, including the header.
	Size uint64

	// HeaderSize is 8, or 16 when the extended size field was used.
	HeaderSize int64

	// Offset is the absolute file offset of the box header.
	Offset int64

	// Class records how the box was handled.
	Class BoxClass

	// Children holds child boxes, containers only.
	Children []Box

	// Data is the raw payload for leaves, retained only when payload
	// capture is enabled and the leaf is below the bulk threshold.
	Data []byte

	// Content is the decoded payload, one of the BoxContent variants,
	// nil when the box type has no decoder.
	Content BoxContent
}

// DataSize returns the payload size excluding the header.
func (b *Box) DataSize() uint64 {
	if b.Size < uint64(b.HeaderSize) {
		return 0
	}
	return b.Size - uint64(b.HeaderSize)
}

// DataOffset returns the absolute file offset where the payload starts.
func (b *Box) DataOffset() int64 {
	return b.Offset + b.HeaderSize
}

// BoxContent is the closed sum of decoded ISOBMFF box payloads.
type BoxContent interface {
	isBoxContent()
}

// FileTypeContent is the decoded ftyp box.
type FileTypeContent struct {
	MajorBrand       string
	MinorVersion     uint32
	CompatibleBrands []string
}

// MovieHeaderContent is the decoded mvhd full box.
type MovieHeaderContent struct {
	Version          byte
	CreationTime     uint64 // seconds since the Mac epoch (1904-01-01)
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64 // in timescale units
	Rate             float64
	Volume           float64
}

// MediaHeaderContent is the decoded mdhd full box.
type MediaHeaderContent struct {
	Version          byte
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64
	Language         string // unpacked ISO-639-2/T code
}

// TrackHeaderContent is the decoded tkhd full box.
type TrackHeaderContent struct {
	Version          byte
	Flags            uint32
	CreationTime     uint64
	ModificationTime uint64
	TrackID          uint32
	Duration         uint64
	Layer            int16
	AlternateGroup   int16
	Volume           float64
	Width            float64
	Height           float64
}

// Enabled reports whether the track-enabled flag bit is set.
func (c TrackHeaderContent) Enabled() bool { return c.Flags&0x01 != 0 }

// InMovie reports whether the track-in-movie flag bit is set.
func (c TrackHeaderContent) InMovie() bool { return c.Flags&0x02 != 0 }

// HandlerContent is the decoded hdlr full box.
type HandlerContent struct {
	Version     byte
	HandlerType string
	Name        string
}

// EditListContent is a summary of the elst full box.
type EditListContent struct {
	Version    byte
	EntryCount uint32
}

// DataReferenceContent is a summary of the dref full box.
type DataReferenceContent struct {
	Version    byte
	EntryCount uint32
}

func (FileTypeContent) isBoxContent()      {}
func (MovieHeaderContent) isBoxContent()   {}
func (MediaHeaderContent) isBoxContent()   {}
func (TrackHeaderContent) isBoxContent()   {}
func (HandlerContent) isBoxContent()       {}
func (EditListContent) isBoxContent()      {}
func (DataReferenceContent) isBoxContent() {}
