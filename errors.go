package docprep

import "errors"

// Sentinel errors for library operations.
var (
	// Converter errors.
	ErrEmptyPath        = errors.New("input path cannot be empty")
	ErrFileNotFound     = errors.New("input file not found")
	ErrInvalidExtension = errors.New("file must have .doc extension")
	ErrNoBackend        = errors.New("no conversion backend available")
	ErrUnknownBackend   = errors.New("unknown conversion backend")
	ErrBackendNotFound  = errors.New("conversion backend not found on this system")
	ErrOutputNotCreated = errors.New("conversion produced no output file")

	// Copy generator validation errors.
	ErrEmptySuffix = errors.New("copy profile suffix cannot be empty")
	ErrEmptyMarker = errors.New("removal requires at least one start marker")
)
