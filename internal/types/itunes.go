package types

import "fmt"

// ItunesValueKind discriminates the decoded forms of an iTunes data box.
type ItunesValueKind int

const (
	// ItunesText is a decoded UTF-8 or UTF-16BE string.
	ItunesText ItunesValueKind = iota
	// ItunesInteger is a signed integer of 1, 2, 4 or 8 bytes.
	ItunesInteger
	// ItunesUnsigned is an unsigned integer of 1, 2, 4 or 8 bytes.
	ItunesUnsigned
	// ItunesImage is an opaque JPEG or PNG payload, recorded by length only.
	ItunesImage
	// ItunesTrackNumber is the trkn current/total pair.
	ItunesTrackNumber
	// ItunesDiskNumber is the disk current/total pair.
	ItunesDiskNumber
	// ItunesBinary is a raw payload with an unrecognized type code.
	ItunesBinary
)

// iTunes data box type codes (low byte of the 3-byte type field).
const (
	ItunesTypeImplicit = 0x00
	ItunesTypeUTF8     = 0x01
	ItunesTypeUTF16BE  = 0x02
	ItunesTypeJPEG     = 0x0D
	ItunesTypePNG      = 0x0E
	ItunesTypeSigned   = 0x15
	ItunesTypeUnsigned = 0x16
)

// ItunesDataTypeName returns the conventional name for a data box type code.
func ItunesDataTypeName(code byte) string {
	switch code {
	case ItunesTypeImplicit:
		return "Implicit"
	case ItunesTypeUTF8:
		return "UTF-8"
	case ItunesTypeUTF16BE:
		return "UTF-16 BE"
	case ItunesTypeJPEG:
		return "JPEG Image"
	case ItunesTypePNG:
		return "PNG Image"
	case ItunesTypeSigned:
		return "Signed Integer"
	case ItunesTypeUnsigned:
		return "Unsigned Integer"
	default:
		return fmt.Sprintf("Binary (0x%02X)", code)
	}
}

// ItunesValueContent is the decoded payload of a 'data' box nested under an
// iTunes metadata item. Exactly the fields implied by Kind are meaningful.
type ItunesValueContent struct {
	// DataType is the original type code from the data box header.
	DataType byte

	Kind ItunesValueKind

	Text     string
	Integer  int64
	Unsigned uint64

	// ImageFormat is "JPEG" or "PNG"; DataSize its payload length.
	ImageFormat string
	DataSize    int

	// Raw is the payload for ItunesBinary values.
	Raw []byte

	// Number and Total carry trkn/disk pairs; Total 0 means unknown.
	Number uint16
	Total  uint16
}

func (ItunesValueContent) isBoxContent() {}

// String renders the value the way the inspection output shows it.
func (v ItunesValueContent) String() string {
	switch v.Kind {
	case ItunesText:
		return fmt.Sprintf("%q", v.Text)
	case ItunesInteger:
		return fmt.Sprintf("%d", v.Integer)
	case ItunesUnsigned:
		return fmt.Sprintf("%d", v.Unsigned)
	case ItunesImage:
		return fmt.Sprintf("%s image, %d bytes", v.ImageFormat, v.DataSize)
	case ItunesTrackNumber:
		if v.Total > 0 {
			return fmt.Sprintf("Track %d of %d", v.Number, v.Total)
		}
		return fmt.Sprintf("Track %d", v.Number)
	case ItunesDiskNumber:
		if v.Total > 0 {
			return fmt.Sprintf("Disk %d of %d", v.Number, v.Total)
		}
		return fmt.Sprintf("Disk %d", v.Number)
	default:
		return fmt.Sprintf("binary data, %d bytes", len(v.Raw))
	}
}
