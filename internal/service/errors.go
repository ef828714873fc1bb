package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these into the
// stable error codes of the HTTP surface; anything else is an internal error
// and never reaches the caller verbatim.
var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrReaderNil          = errors.New("reader is nil")
	ErrCategoryRequired   = errors.New("category is required")
	ErrNameRequired       = errors.New("name is required")
	ErrNoDocumentsGiven   = errors.New("no documents selected")
	ErrTargetUserRequired = errors.New("target user is required")
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
