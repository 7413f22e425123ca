package id3v2

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/mediadissect/internal/types"
)

// decodeString decodes raw frame bytes in the given encoding into a Go
// string. Malformed sequences degrade to replacement characters; decoding
// never fails the surrounding frame.
func decodeString(data []byte, enc types.TextEncoding) string {
	if len(data) == 0 {
		return ""
	}

	switch enc {
	case types.EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return string(data)
		}
		return string(out)

	case types.EncodingUTF16:
		return decodeUTF16(data, unicode.UseBOM)

	case types.EncodingUTF16BE:
		return decodeUTF16(data, unicode.IgnoreBOM)

	case types.EncodingUTF8:
		if utf8.Valid(data) {
			return string(data)
		}
		return strings.ToValidUTF8(string(data), "�")

	default:
		// Unknown encoding byte - best effort as Latin-1
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return string(data)
		}
		return string(out)
	}
}

// decodeUTF16 decodes UTF-16 bytes, big-endian unless a BOM says otherwise.
func decodeUTF16(data []byte, policy unicode.BOMPolicy) string {
	// A trailing odd byte cannot form a code unit; drop it rather than
	// failing the whole string.
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return ""
	}

	dec := unicode.UTF16(unicode.BigEndian, policy).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return ""
	}
	return string(out)
}

// findTerminator returns the byte index of the first NUL terminator for the
// encoding, or -1. UTF-16 scans stay aligned to 2-byte code units so a low
// byte of one unit followed by the high byte of the next never matches.
func findTerminator(data []byte, enc types.TextEncoding) int {
	if enc.TerminatorLen() == 1 {
		return bytes.IndexByte(data, 0)
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}

// splitTerminated splits data at the first NUL terminator and decodes the
// part before it. When no terminator exists the whole input is the first
// part and the remainder is empty.
func splitTerminated(data []byte, enc types.TextEncoding) (first string, rest []byte) {
	idx := findTerminator(data, enc)
	if idx < 0 {
		return decodeString(data, enc), nil
	}
	return decodeString(data[:idx], enc), data[idx+enc.TerminatorLen():]
}

// splitStrings decodes a sequence of NUL-delimited strings, as used by
// multi-valued text frames. Empty segments are dropped.
func splitStrings(data []byte, enc types.TextEncoding) []string {
	var out []string
	for len(data) > 0 {
		idx := findTerminator(data, enc)
		if idx < 0 {
			if s := decodeString(data, enc); s != "" {
				out = append(out, s)
			}
			break
		}
		if s := decodeString(data[:idx], enc); s != "" {
			out = append(out, s)
		}
		data = data[idx+enc.TerminatorLen():]
	}
	return out
}

// latin1 decodes a NUL-free byte run as ISO-8859-1, used for element IDs
// and MIME types which are Latin-1 regardless of the frame encoding byte.
func latin1(data []byte) string {
	return decodeString(data, types.EncodingLatin1)
}
