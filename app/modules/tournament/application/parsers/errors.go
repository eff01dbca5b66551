package parsers

import "errors"

var (
	// ErrUnsupportedFileType is returned by the factory for unknown extensions.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyRoster is returned when a file holds no player names.
	ErrEmptyRoster = errors.New("no player names found")
)
