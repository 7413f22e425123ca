package isobmff

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/simonhull/mediadissect/internal/types"
)

// decodeContent decodes the payload of a leaf box with a known layout.
// Box types without a decoder return (nil, nil); malformed payloads
// return an error which the caller downgrades to a diagnostic.
func decodeContent(boxType string, data []byte) (types.BoxContent, error) {
	switch boxType {
	case "ftyp":
		return parseFileType(data)
	case "mvhd":
		return parseMovieHeader(data)
	case "mdhd":
		return parseMediaHeader(data)
	case "tkhd":
		return parseTrackHeader(data)
	case "hdlr":
		return parseHandler(data)
	case "elst":
		return parseEditList(data)
	default:
		return nil, nil
	}
}

func be32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func be64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func parseFileType(data []byte) (types.BoxContent, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("ftyp payload is %d bytes, need at least 8", len(data))
	}
	c := types.FileTypeContent{
		MajorBrand:   string(data[0:4]),
		MinorVersion: be32(data[4:8]),
	}
	for off := 8; off+4 <= len(data); off += 4 {
		c.CompatibleBrands = append(c.CompatibleBrands, string(data[off:off+4]))
	}
	return c, nil
}

func parseMovieHeader(data []byte) (types.BoxContent, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("mvhd payload is %d bytes, need at least 4", len(data))
	}
	c := types.MovieHeaderContent{Version: data[0]}

	var rateOff int
	if c.Version == 1 {
		if len(data) < 38 {
			return nil, fmt.Errorf("mvhd version 1 payload is %d bytes, need 38", len(data))
		}
		c.CreationTime = be64(data[4:12])
		c.ModificationTime = be64(data[12:20])
		c.Timescale = be32(data[20:24])
		c.Duration = be64(data[24:32])
		rateOff = 32
	} else {
		if len(data) < 26 {
			return nil, fmt.Errorf("mvhd version 0 payload is %d bytes, need 26", len(data))
		}
		c.CreationTime = uint64(be32(data[4:8]))
		c.ModificationTime = uint64(be32(data[8:12]))
		c.Timescale = be32(data[12:16])
		c.Duration = uint64(be32(data[16:20]))
		rateOff = 20
	}

	// Rate is 16.16 fixed point, volume 8.8.
	c.Rate = float64(int32(be32(data[rateOff:rateOff+4]))) / 65536.0
	c.Volume = float64(int16(binary.BigEndian.Uint16(data[rateOff+4:rateOff+6]))) / 256.0
	return c, nil
}

func parseMediaHeader(data []byte) (types.BoxContent, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("mdhd payload is %d bytes, need at least 4", len(data))
	}
	c := types.MediaHeaderContent{Version: data[0]}

	var langOff int
	if c.Version == 1 {
		if len(data) < 34 {
			return nil, fmt.Errorf("mdhd version 1 payload is %d bytes, need 34", len(data))
		}
		c.CreationTime = be64(data[4:12])
		c.ModificationTime = be64(data[12:20])
		c.Timescale = be32(data[20:24])
		c.Duration = be64(data[24:32])
		langOff = 32
	} else {
		if len(data) < 22 {
			return nil, fmt.Errorf("mdhd version 0 payload is %d bytes, need 22", len(data))
		}
		c.CreationTime = uint64(be32(data[4:8]))
		c.ModificationTime = uint64(be32(data[8:12]))
		c.Timescale = be32(data[12:16])
		c.Duration = uint64(be32(data[16:20]))
		langOff = 20
	}

	// Language is three 5-bit characters packed into 16 bits, offset by 0x60.
	code := binary.BigEndian.Uint16(data[langOff : langOff+2])
	c.Language = string([]byte{
		byte((code>>10)&0x1F) + 0x60,
		byte((code>>5)&0x1F) + 0x60,
		byte(code&0x1F) + 0x60,
	})
	return c, nil
}

func parseTrackHeader(data []byte) (types.BoxContent, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("tkhd payload is %d bytes, need at least 4", len(data))
	}
	c := types.TrackHeaderContent{
		Version: data[0],
		Flags:   uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]),
	}

	var base int
	if c.Version == 1 {
		if len(data) < 36 {
			return nil, fmt.Errorf("tkhd version 1 payload is %d bytes, need at least 36", len(data))
		}
		c.CreationTime = be64(data[4:12])
		c.ModificationTime = be64(data[12:20])
		c.TrackID = be32(data[20:24])
		c.Duration = be64(data[28:36])
		base = 36
	} else {
		if len(data) < 24 {
			return nil, fmt.Errorf("tkhd version 0 payload is %d bytes, need at least 24", len(data))
		}
		c.CreationTime = uint64(be32(data[4:8]))
		c.ModificationTime = uint64(be32(data[8:12]))
		c.TrackID = be32(data[12:16])
		c.Duration = uint64(be32(data[20:24]))
		base = 24
	}

	if len(data) < base+60 {
		return nil, fmt.Errorf("tkhd payload is %d bytes, need %d", len(data), base+60)
	}
	c.Layer = int16(binary.BigEndian.Uint16(data[base+8 : base+10]))
	c.AlternateGroup = int16(binary.BigEndian.Uint16(data[base+10 : base+12]))
	c.Volume = float64(int16(binary.BigEndian.Uint16(data[base+12:base+14]))) / 256.0
	c.Width = float64(be32(data[base+52:base+56])) / 65536.0
	c.Height = float64(be32(data[base+56:base+60])) / 65536.0
	return c, nil
}

func parseHandler(data []byte) (types.BoxContent, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("hdlr payload is %d bytes, need at least 12", len(data))
	}
	c := types.HandlerContent{
		Version:     data[0],
		HandlerType: string(data[8:12]),
	}
	if len(data) > 24 {
		c.Name = strings.TrimRight(string(data[24:]), "\x00")
	}
	return c, nil
}

func parseEditList(data []byte) (types.BoxContent, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("elst payload is %d bytes, need at least 8", len(data))
	}
	return types.EditListContent{
		Version:    data[0],
		EntryCount: be32(data[4:8]),
	}, nil
}
