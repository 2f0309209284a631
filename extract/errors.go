package extract

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned at the dispatch boundary for file
// extensions no reader handles, before any extraction is attempted.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTimeout marks an extraction or download that hit its deadline.
var ErrTimeout = errors.New("extraction timed out")

// ExtractionError wraps a reader failure with the source it came from.
// Callers decide whether to skip the reference or abort; handlers in
// this repo skip with a logged warning.
type ExtractionError struct {
	Kind string
	Key  string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s %q: %v", e.Kind, e.Key, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// AmbiguityError reports an encyclopedia title matching a
// disambiguation page. Options carries the candidate titles.
type AmbiguityError struct {
	Title   string
	Options []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous topic %q: %d candidates", e.Title, len(e.Options))
}

// NotFoundError reports an encyclopedia title with no article.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("topic %q does not exist", e.Title)
}

// FetchError reports a network or HTTP failure while retrieving a
// remote resource.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// wrapCtx converts a context deadline into ErrTimeout so callers can
// test for it uniformly across extractors.
func wrapCtx(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
