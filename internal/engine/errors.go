package engine

import "errors"

// Core error taxonomy. Adapters match with errors.Is and turn these
// into user-facing messages; nothing here is fatal to the process.
var (
	// ErrNoUploadedFile: analysis was requested before any upload.
	ErrNoUploadedFile = errors.New("no uploaded file for this session")

	// ErrInvalidCategory: a toggle named a category outside the known set.
	ErrInvalidCategory = errors.New("unknown filter category")

	// ErrUploadTooLarge: the upload exceeds the configured size cap.
	ErrUploadTooLarge = errors.New("uploaded file is too large")

	// ErrUnsupportedEncoding: the upload could not be decoded to text.
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
)
