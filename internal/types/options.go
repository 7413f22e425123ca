package types

// Options controls how much of the file a dissector buffers and surfaces.
// The zero value is the default behavior.
type Options struct {
	// RawData retains leaf payload bytes (frame data, box payloads below
	// the bulk threshold) on the result for later hex dumping.
	RawData bool

	// TechnicalLeaves keeps sample-table bookkeeping boxes and skipped
	// bulk leaves in the outward box tree instead of pruning them.
	TechnicalLeaves bool

	// Strict turns any Error or Fatal diagnostic into a returned error.
	Strict bool
}
