package main

import (
	"fmt"
	"strings"
)

// formatHexdump renders data as a classic hex dump: 16 bytes per row with
// a gap after 8, offsets on the left, printable ASCII on the right. When
// limit is positive, output stops after that many bytes with a marker for
// the remainder.
func formatHexdump(data []byte, baseOffset int64, limit int) string {
	shown := data
	if limit > 0 && len(data) > limit {
		shown = data[:limit]
	}

	var sb strings.Builder
	for row := 0; row < len(shown); row += 16 {
		end := row + 16
		if end > len(shown) {
			end = len(shown)
		}
		line := shown[row:end]

		fmt.Fprintf(&sb, "%08X  ", baseOffset+int64(row))

		for i := 0; i < 16; i++ {
			if i == 8 {
				sb.WriteByte(' ')
			}
			if i < len(line) {
				fmt.Fprintf(&sb, "%02X ", line[i])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" |")
		for _, b := range line {
			if b >= 0x20 && b <= 0x7E {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}

	if limit > 0 && len(data) > limit {
		fmt.Fprintf(&sb, "... %d more bytes\n", len(data)-limit)
	}
	return strings.TrimRight(sb.String(), "\n")
}
