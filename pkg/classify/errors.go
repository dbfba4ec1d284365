package classify

import "errors"

// Sentinel errors for scraping failures.
// Callers should use errors.Is() to check for these.
var (
	// ErrTokenNotFound indicates the page carries no usable
	// <meta name="csrf-token"> element.
	ErrTokenNotFound = errors.New("classify: csrf token not found")

	// ErrPagination indicates the pager exists but its last page marker
	// could not be read.
	ErrPagination = errors.New("classify: unreadable pagination control")

	// ErrMarkup indicates the document could not be parsed at all.
	ErrMarkup = errors.New("classify: unparseable markup")
)
