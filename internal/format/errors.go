package format

import "errors"

var (
	// ErrBadMagic indicates the blob did not start with the FDT magic.
	ErrBadMagic = errors.New("format: bad magic")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates the blob version is outside the range this package traverses.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrNotFound indicates a requested node or property was missing.
	ErrNotFound = errors.New("format: not found")
)
