package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a sample file with an unknown extension.
	// Only csv, json and xml samples can be sniffed.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParse indicates a malformed sample file or a malformed
	// assistant response that could not be decoded.
	ErrParse = errors.New("parse failed")

	// ErrService indicates the assistant backend returned a non-success
	// response or an incomplete payload. Existing artifacts are left
	// untouched when this is returned.
	ErrService = errors.New("assistant service failed")

	// Lifecycle guard errors. These are enforced at the service layer,
	// not just by whatever front end drives it.

	// ErrPhaseNotReady indicates a prerequisite phase has not completed,
	// e.g. saving source fields before a target schema exists.
	ErrPhaseNotReady = errors.New("prerequisite phase not complete")

	// ErrSchemaLocked indicates the target schema is published and
	// can no longer be edited.
	ErrSchemaLocked = errors.New("target schema is published")

	// ErrSourceLocked indicates source fields can no longer be edited
	// because a mapping draft or a published transformation depends on them.
	ErrSourceLocked = errors.New("source fields are locked")

	// ErrMappingLocked indicates the mapping is part of a published
	// transformation and can no longer be edited or re-suggested.
	ErrMappingLocked = errors.New("mapping is locked")

	// ErrExportNotReady indicates code generation was requested before
	// the transformation was published.
	ErrExportNotReady = errors.New("transformation not published")

	// ErrSchemaInvalid indicates the manually edited schema text is not
	// valid JSON. The project stays editable but cannot progress to mapping.
	ErrSchemaInvalid = errors.New("schema text is not valid JSON")
)
