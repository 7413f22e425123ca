package id3v2

// frameDescriptions maps frame IDs to human-readable labels, unified across
// ID3v2.3 and ID3v2.4.
var frameDescriptions = map[string]string{
	// Text information frames
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TALB": "Album/Movie/Show title",
	"TOAL": "Original album/movie/show title",
	"TRCK": "Track number/Position in set",
	"TPOS": "Part of a set",
	"TSST": "Set subtitle",
	"TSRC": "ISRC (international standard recording code)",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TOPE": "Original artist(s)/performer(s)",
	"TEXT": "Lyricist/Text writer",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TCOM": "Composer",
	"TMCL": "Musician credits list",
	"TIPL": "Involved people list",
	"TENC": "Encoded by",
	"TBPM": "BPM (beats per minute)",
	"TLEN": "Length",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TCON": "Content type",
	"TFLT": "File type",
	"TMED": "Media type",
	"TMOO": "Mood",
	"TCOP": "Copyright message",
	"TPRO": "Produced notice",
	"TPUB": "Publisher",
	"TOWN": "File owner/licensee",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TOFN": "Original filename",
	"TDLY": "Playlist delay",
	"TDEN": "Encoding time",
	"TDOR": "Original release time",
	"TDRC": "Recording time",
	"TDRL": "Release time",
	"TDTG": "Tagging time",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TSOA": "Album sort order",
	"TSOP": "Performer sort order",
	"TSOT": "Title sort order",
	"TXXX": "User defined text information frame",

	// ID3v2.3 specific frames
	"TDAT": "Date",
	"TIME": "Time",
	"TORY": "Original release year",
	"TRDA": "Recording dates",
	"TSIZ": "Size",
	"TYER": "Year",
	"IPLS": "Involved people list",
	"RVAD": "Relative volume adjustment",
	"EQUA": "Equalisation",

	// ID3v2.4 specific frames
	"RVA2": "Relative volume adjustment (2)",
	"EQU2": "Equalisation (2)",
	"SEEK": "Seek frame",
	"ASPI": "Audio seek point index",
	"SIGN": "Signature frame",

	// URL frames
	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",

	// Other frames
	"MCDI": "Music CD identifier",
	"ETCO": "Event timing codes",
	"MLLT": "MPEG location lookup table",
	"SYTC": "Synchronized tempo codes",
	"USLT": "Unsychronized lyric/text transcription",
	"SYLT": "Synchronized lyric/text",
	"COMM": "Comments",
	"RVRB": "Reverb",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"RBUF": "Recommended buffer size",
	"AENC": "Audio encryption",
	"LINK": "Linked information",
	"POSS": "Position synchronisation frame",
	"USER": "Terms of use",
	"OWNE": "Ownership frame",
	"COMR": "Commercial frame",
	"ENCR": "Encryption method registration",
	"GRID": "Group identification registration",
	"PRIV": "Private frame",
	"GEOB": "General encapsulated object",
	"UFID": "Unique file identifier",
	"APIC": "Attached picture",

	// Chapter frames (ID3v2 Chapter Frame Addendum)
	"CHAP": "Chapter frame",
	"CTOC": "Table of contents frame",
}

// Describe returns a human-readable label for a frame ID.
func Describe(frameID string) string {
	if desc, ok := frameDescriptions[frameID]; ok {
		return desc
	}
	return "Unknown frame type"
}

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

var validV23Frames = idSet(
	// Text information frames
	"TALB", "TBPM", "TCOM", "TCON", "TCOP", "TDAT", "TDLY", "TENC", "TEXT",
	"TFLT", "TIME", "TIT1", "TIT2", "TIT3", "TKEY", "TLAN", "TLEN", "TMED",
	"TOAL", "TOFN", "TOLY", "TOPE", "TORY", "TOWN", "TPE1", "TPE2", "TPE3",
	"TPE4", "TPOS", "TPUB", "TRCK", "TRDA", "TRSN", "TRSO", "TSIZ", "TSRC",
	"TSSE", "TYER", "TXXX",
	// URL link frames
	"WCOM", "WCOP", "WOAF", "WOAR", "WOAS", "WORS", "WPAY", "WPUB", "WXXX",
	// Other frames
	"UFID", "MCDI", "ETCO", "MLLT", "SYTC", "USLT", "SYLT", "COMM", "RVAD",
	"EQUA", "RVRB", "PCNT", "POPM", "RBUF", "AENC", "LINK", "POSS", "USER",
	"OWNE", "COMR", "ENCR", "GRID", "PRIV", "GEOB", "IPLS", "APIC",
	// Chapter frames (ID3v2 Chapter Frame Addendum)
	"CHAP", "CTOC",
)

var validV24Frames = idSet(
	// Text information frames
	"TALB", "TBPM", "TCOM", "TCON", "TCOP", "TDEN", "TDLY", "TDOR", "TDRC",
	"TDRL", "TDTG", "TENC", "TEXT", "TFLT", "TIPL", "TIT1", "TIT2", "TIT3",
	"TKEY", "TLAN", "TLEN", "TMCL", "TMED", "TMOO", "TOAL", "TOFN", "TOLY",
	"TOPE", "TOWN", "TPE1", "TPE2", "TPE3", "TPE4", "TPOS", "TPRO", "TPUB",
	"TRCK", "TRSN", "TRSO", "TSOA", "TSOP", "TSOT", "TSRC", "TSSE", "TSST",
	"TXXX",
	// URL link frames
	"WCOM", "WCOP", "WOAF", "WOAR", "WOAS", "WORS", "WPAY", "WPUB", "WXXX",
	// Other frames
	"UFID", "MCDI", "ETCO", "MLLT", "SYTC", "USLT", "SYLT", "COMM", "RVA2",
	"EQU2", "RVRB", "PCNT", "POPM", "RBUF", "AENC", "LINK", "POSS", "USER",
	"OWNE", "COMR", "ENCR", "GRID", "PRIV", "GEOB", "APIC", "SEEK", "ASPI",
	"SIGN",
	// Chapter frames (ID3v2 Chapter Frame Addendum)
	"CHAP", "CTOC",
)

// ValidFrameID reports whether a frame ID is defined for the given ID3v2
// major version.
func ValidFrameID(frameID string, major byte) bool {
	switch major {
	case 3:
		_, ok := validV23Frames[frameID]
		return ok
	case 4:
		_, ok := validV24Frames[frameID]
		return ok
	default:
		return false
	}
}

// PictureTypeName returns the label for an APIC picture-type code.
func PictureTypeName(pictureType byte) string {
	switch pictureType {
	case 0x00:
		return "Other"
	case 0x01:
		return "32x32 pixels 'file icon' (PNG only)"
	case 0x02:
		return "Other file icon"
	case 0x03:
		return "Cover (front)"
	case 0x04:
		return "Cover (back)"
	case 0x05:
		return "Leaflet page"
	case 0x06:
		return "Media (e.g. label side of CD)"
	case 0x07:
		return "Lead artist/lead performer/soloist"
	case 0x08:
		return "Artist/performer"
	case 0x09:
		return "Conductor"
	case 0x0A:
		return "Band/Orchestra"
	case 0x0B:
		return "Composer"
	case 0x0C:
		return "Lyricist/text writer"
	case 0x0D:
		return "Recording Location"
	case 0x0E:
		return "During recording"
	case 0x0F:
		return "During performance"
	case 0x10:
		return "Movie/video screen capture"
	case 0x11:
		return "A bright coloured fish"
	case 0x12:
		return "Illustration"
	case 0x13:
		return "Band/artist logotype"
	case 0x14:
		return "Publisher/Studio logotype"
	default:
		return "Unknown"
	}
}
