package repository

import "errors"

// Page and browser failures. Callers classify them with errors.Is.
var (
	ErrNavigationFailed   = errors.New("navigation failed")
	ErrPageTimeout        = errors.New("page operation timed out")
	ErrPermissionDenied   = errors.New("page does not allow script access")
	ErrExtractionFailed   = errors.New("extraction failed")
	ErrBrowserUnavailable = errors.New("browser unavailable")
)

// Publishing failures.
var (
	ErrCredentialUnavailable = errors.New("credential unavailable")
	ErrPublishAuth           = errors.New("publisher rejected credential")
	ErrDocumentCreate        = errors.New("failed to create document")
	ErrDocumentFormat        = errors.New("failed to format document")
)

// Storage failures.
var (
	ErrNotFound   = errors.New("not found")
	ErrQueueEmpty = errors.New("queue is empty")
	ErrCacheMiss  = errors.New("cache miss")
)
