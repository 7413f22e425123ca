package isobmff

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/mediadissect/internal/types"
)

// parseItunesValue decodes the payload of a 'data' box nested under an
// iTunes metadata item. The payload starts with a reserved byte, a 3-byte
// type indicator and a 4-byte locale field; the value follows.
func parseItunesValue(itemType string, data []byte) (types.ItunesValueContent, error) {
	var v types.ItunesValueContent
	if len(data) < 8 {
		return v, fmt.Errorf("data box payload is %d bytes, need at least 8", len(data))
	}

	v.DataType = data[3]
	payload := data[8:]

	switch v.DataType {
	case types.ItunesTypeImplicit:
		if itemType == "trkn" || itemType == "disk" {
			return parseNumberPair(itemType, v, payload)
		}
		// Implicit values for text items are UTF-8 in practice.
		v.Kind = types.ItunesText
		v.Text = string(payload)

	case types.ItunesTypeUTF8:
		v.Kind = types.ItunesText
		v.Text = string(payload)

	case types.ItunesTypeUTF16BE:
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(payload)
		if err != nil {
			return v, fmt.Errorf("UTF-16 value: %w", err)
		}
		v.Kind = types.ItunesText
		v.Text = string(decoded)

	case types.ItunesTypeJPEG:
		v.Kind = types.ItunesImage
		v.ImageFormat = "JPEG"
		v.DataSize = len(payload)

	case types.ItunesTypePNG:
		v.Kind = types.ItunesImage
		v.ImageFormat = "PNG"
		v.DataSize = len(payload)

	case types.ItunesTypeSigned:
		v.Kind = types.ItunesInteger
		switch len(payload) {
		case 1:
			v.Integer = int64(int8(payload[0]))
		case 2:
			v.Integer = int64(int16(binary.BigEndian.Uint16(payload)))
		case 4:
			v.Integer = int64(int32(binary.BigEndian.Uint32(payload)))
		case 8:
			v.Integer = int64(binary.BigEndian.Uint64(payload))
		default:
			return v, fmt.Errorf("signed integer payload has unsupported width %d", len(payload))
		}

	case types.ItunesTypeUnsigned:
		// iTunes writes trkn/disk pairs under the unsigned type as well.
		if itemType == "trkn" || itemType == "disk" {
			return parseNumberPair(itemType, v, payload)
		}
		v.Kind = types.ItunesUnsigned
		switch len(payload) {
		case 1:
			v.Unsigned = uint64(payload[0])
		case 2:
			v.Unsigned = uint64(binary.BigEndian.Uint16(payload))
		case 4:
			v.Unsigned = uint64(binary.BigEndian.Uint32(payload))
		case 8:
			v.Unsigned = binary.BigEndian.Uint64(payload)
		default:
			return v, fmt.Errorf("unsigned integer payload has unsupported width %d", len(payload))
		}

	default:
		v.Kind = types.ItunesBinary
		v.Raw = payload
	}

	return v, nil
}

// parseNumberPair decodes the trkn/disk layout: 2 reserved bytes, current
// number, total count. A zero total means the count is unknown.
func parseNumberPair(itemType string, v types.ItunesValueContent, payload []byte) (types.ItunesValueContent, error) {
	if len(payload) < 6 {
		return v, fmt.Errorf("%s payload is %d bytes, need at least 6", itemType, len(payload))
	}
	if itemType == "disk" {
		v.Kind = types.ItunesDiskNumber
	} else {
		v.Kind = types.ItunesTrackNumber
	}
	v.Number = binary.BigEndian.Uint16(payload[2:4])
	v.Total = binary.BigEndian.Uint16(payload[4:6])
	return v, nil
}
