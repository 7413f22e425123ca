// Package mediadissect dissects the metadata structures of media files
// for inspection and diagnosis: ID3v2.3/2.4 tags in MP3 files and ISOBMFF
// box trees in MP4-family files (M4A, M4B, M4V, MOV, 3GP).
//
// # Quick Start
//
// Dissecting a file:
//
//	result, err := mediadissect.Open("episode.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, frame := range result.Tag.Frames {
//		fmt.Printf("%s: %v\n", frame.ID, frame.Content)
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
//
// # Philosophy
//
// mediadissect is a dissector, not a tag reader: it reports what is
// actually in the file, byte for byte, rather than a cleaned-up view of
// what should be there. Three principles follow from that:
//
// 1. Diagnostics are data. A malformed frame or box produces a Diagnostic
// on the Result and dissection continues with everything parsed so far.
// A call fails with an error only when no Result can be built at all.
//
// 2. Structure over semantics. The library decodes layout, sizes, and
// encodings; it does not judge whether a title is sensible or a duration
// plausible, and it never modifies files.
//
// 3. Bounded resources. Declared sizes are checked against the bytes
// actually present, payloads above 1MB are recorded without buffering,
// and box recursion is capped.
//
// # Formats
//
//   - ID3v2.3 and ID3v2.4, including unsynchronization, extended headers,
//     and the Chapter Addendum's CHAP/CTOC frames with embedded sub-frames
//   - ISOBMFF box trees, including iTunes metadata items and their typed
//     'data' values
//
// # Concurrency
//
// Results are plain data with no retained file handles. OpenMany dissects
// a batch of files in parallel:
//
//	results, err := mediadissect.OpenMany(ctx, paths...)
//
// # Options
//
// Behavior is tuned with functional options: WithRawData retains raw
// payload bytes for hex dumps, WithTechnicalLeaves surfaces sample-table
// bookkeeping boxes, and WithStrictParsing turns error-level diagnostics
// into returned errors.
package mediadissect
