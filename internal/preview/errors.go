package preview

import (
	"errors"
	"fmt"
)

var (
	// ErrStale marks a result superseded by newer input. It is the expected
	// outcome of a cancelled generation, not a real failure, and is filtered
	// out before logging.
	ErrStale = errors.New("preview: stale result")

	// ErrNoPreviewer means no external previewer matched the file.
	ErrNoPreviewer = errors.New("preview: no previewer found")

	// ErrNoListing is returned by TakeFiles when the active preview is not a
	// directory listing.
	ErrNoListing = errors.New("preview: active preview is not a directory listing")

	// ErrOutputNotText means an external previewer emitted invalid UTF-8.
	ErrOutputNotText = errors.New("preview: previewer output is not valid UTF-8")
)

// BuildError reports that no preview could be built for a file.
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("preview failed for %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func buildFailed(path string, err error) error {
	return &BuildError{Path: path, Err: err}
}
