package domain

import "errors"

// ============================================================================
// Storage Errors
// ============================================================================

var (
	ErrNodeNotFound = errors.New("node not found")
)

// ============================================================================
// Article Errors
// ============================================================================

// Access denied errors
var (
	ErrAccessDenied           = errors.New("access denied")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid or expired credentials")
)

// Not found errors
var (
	ErrArticleNotFound = errors.New("article not found")
)

// Validation errors
var (
	ErrMissingTitle           = errors.New("title is required")
	ErrTitleTooLong           = errors.New("title must be at most 255 characters")
	ErrMissingBody            = errors.New("body is required")
	ErrInvalidTextFormat      = errors.New("unknown text format")
	ErrInvalidArticleID       = errors.New("invalid article id")
	ErrEmptyPatch             = errors.New("no updatable fields in request")
	ErrUnsupportedContentType = errors.New("request body must be application/json")
)
