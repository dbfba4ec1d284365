// Package iohelper provides helpers for reading platform responses with
// size limits and releasing connections afterwards.
package iohelper

import (
	"errors"
	"fmt"
	"io"
)

// Body size limits
const (
	// PageMaxBodySize bounds a full HTML page (dashboard, targets listing) (8MB)
	PageMaxBodySize int64 = 8 * 1024 * 1024

	// FragmentMaxBodySize bounds PJAX fragments and action responses (1MB)
	FragmentMaxBodySize int64 = 1024 * 1024

	// drainLimit caps how much of an unread body is discarded before close (64KB)
	drainLimit int64 = 64 * 1024
)

// ErrBodyTooLarge is returned when a body exceeds the requested limit.
var ErrBodyTooLarge = errors.New("iohelper: body exceeds size limit")

// ReadBody reads at most maxSize bytes from r. If r holds more than maxSize
// bytes the first maxSize bytes are returned together with ErrBodyTooLarge,
// so callers can decide whether a truncated page is still usable.
// A nil reader yields an empty slice.
func ReadBody(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > maxSize {
		return data[:maxSize], fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, maxSize)
	}
	return data, nil
}

// DrainAndClose discards what is left of r (up to 64KB) and closes it if it
// is a ReadCloser, so the keep-alive connection can be reused.
// Always returns nil to allow use in defer.
func DrainAndClose(r io.Reader) error {
	if r == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(r, drainLimit))
	if rc, ok := r.(io.ReadCloser); ok {
		rc.Close()
	}
	return nil
}
