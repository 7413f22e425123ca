package types

import "testing"

func TestTextEncoding_ValidForVersion(t *testing.T) {
	tests := []struct {
		name     string
		encoding TextEncoding
		major    byte
		want     bool
	}{
		{"latin1 v2.3", EncodingLatin1, 3, true},
		{"latin1 v2.4", EncodingLatin1, 4, true},
		{"utf16 v2.3", EncodingUTF16, 3, true},
		{"utf16be v2.3", EncodingUTF16BE, 3, false},
		{"utf16be v2.4", EncodingUTF16BE, 4, true},
		{"utf8 v2.3", EncodingUTF8, 3, false},
		{"utf8 v2.4", EncodingUTF8, 4, true},
		{"out of range", TextEncoding(9), 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.encoding.ValidForVersion(tt.major); got != tt.want {
				t.Errorf("ValidForVersion(%d) = %v, want %v", tt.major, got, tt.want)
			}
		})
	}
}

func TestTextEncoding_TerminatorLen(t *testing.T) {
	if got := EncodingLatin1.TerminatorLen(); got != 1 {
		t.Errorf("latin1 terminator = %d, want 1", got)
	}
	if got := EncodingUTF16.TerminatorLen(); got != 2 {
		t.Errorf("utf16 terminator = %d, want 2", got)
	}
	if got := EncodingUTF16BE.TerminatorLen(); got != 2 {
		t.Errorf("utf16be terminator = %d, want 2", got)
	}
	if got := EncodingUTF8.TerminatorLen(); got != 1 {
		t.Errorf("utf8 terminator = %d, want 1", got)
	}
}

func TestChapterContent_OffsetsUsed(t *testing.T) {
	used := ChapterContent{StartOffset: 100, EndOffset: 200}
	if !used.OffsetsUsed() {
		t.Error("OffsetsUsed() = false for concrete offsets")
	}
	unused := ChapterContent{StartOffset: 0xFFFFFFFF, EndOffset: 0xFFFFFFFF}
	if unused.OffsetsUsed() {
		t.Error("OffsetsUsed() = true for sentinel offsets")
	}
}

func TestTag_Flags(t *testing.T) {
	tag := &Tag{Version: 4, Flags: TagFlagUnsync | TagFlagFooter}
	if !tag.Unsync() {
		t.Error("Unsync() = false")
	}
	if !tag.HasFooter() {
		t.Error("HasFooter() = false")
	}
	if tag.HasExtendedHeader() {
		t.Error("HasExtendedHeader() = true without flag")
	}

	// The footer bit is not defined before v2.4.
	v3 := &Tag{Version: 3, Flags: TagFlagFooter}
	if v3.HasFooter() {
		t.Error("HasFooter() = true on v2.3")
	}
}

func TestResult_FindBox(t *testing.T) {
	r := &Result{Boxes: []Box{
		{Type: "ftyp"},
		{Type: "moov", Children: []Box{
			{Type: "udta", Children: []Box{
				{Type: "meta", Children: []Box{{Type: "ilst"}}},
			}},
		}},
	}}

	if box := r.FindBox("moov", "udta", "meta", "ilst"); box == nil {
		t.Fatal("FindBox() = nil for existing path")
	}
	if box := r.FindBox("moov", "trak"); box != nil {
		t.Errorf("FindBox() = %v for missing path", box)
	}
}
