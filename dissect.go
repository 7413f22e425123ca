package mediadissect

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/mediadissect/internal/registry"
	"github.com/simonhull/mediadissect/internal/types"

	// Format dissectors register themselves on import.
	_ "github.com/simonhull/mediadissect/internal/id3v2"
	_ "github.com/simonhull/mediadissect/internal/isobmff"
)

// Open dissects the metadata structures of a media file.
//
// The file handle is closed before Open returns on every path; the
// Result is plain data and stays valid indefinitely.
//
// Malformed structures inside the file become Diagnostics on the Result
// rather than errors. Open returns an error only when the file cannot be
// read, its format cannot be detected, or a mandatory structure such as
// the tag header is missing (see StructuralError).
//
// Example:
//
//	result, err := mediadissect.Open("episode.mp3")
//	if err != nil {
//		return err
//	}
//	if title := result.FindFrame("TIT2"); title != nil {
//		fmt.Println(title.Content)
//	}
func Open(path string, opts ...Option) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return OpenReader(f, stat.Size(), path, opts...)
}

// OpenReader dissects from an io.ReaderAt. The path is used only for
// labeling the Result and error messages.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (*Result, error) {
	options := applyOptions(opts)

	format, err := types.DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	d := registry.Get(format)
	if d == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no dissector available for format %s", format),
		}
	}

	return d.Dissect(r, size, path, options)
}

// OpenMany dissects multiple files concurrently.
//
// Files are processed in parallel using up to runtime.NumCPU()
// goroutines. Results are returned in the same order as the input paths.
// On the first failure the remaining work is cancelled and only the
// error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Result, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
