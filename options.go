package mediadissect

import "github.com/simonhull/mediadissect/internal/types"

// Option configures behavior when dissecting files.
//
// Options use the functional options pattern:
//
//	result, err := mediadissect.Open("episode.m4b",
//	    mediadissect.WithRawData(),
//	    mediadissect.WithTechnicalLeaves(),
//	)
type Option func(*types.Options)

func applyOptions(opts []Option) types.Options {
	var options types.Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithRawData retains raw payload bytes on frames and boxes.
//
// By default picture frames and leaf boxes have their raw payloads
// dropped once decoded, keeping Results small. Enable this when the
// bytes themselves are wanted, e.g. for hex dumps.
func WithRawData() Option {
	return func(o *types.Options) {
		o.RawData = true
	}
}

// WithTechnicalLeaves surfaces sample-table bookkeeping boxes (stts,
// stsc, stsz, stco, co64) and media-payload boxes (mdat, free) in the
// box tree. They are pruned by default because they carry no descriptive
// metadata.
func WithTechnicalLeaves() Option {
	return func(o *types.Options) {
		o.TechnicalLeaves = true
	}
}

// WithStrictParsing turns error-level diagnostics into returned errors.
//
// By default dissection reports malformed structures as diagnostics and
// keeps going. With strict parsing enabled, a Result carrying any Error
// or Fatal diagnostic is returned together with a StructuralError.
func WithStrictParsing() Option {
	return func(o *types.Options) {
		o.Strict = true
	}
}
