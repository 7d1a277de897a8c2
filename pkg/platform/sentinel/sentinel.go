package sentinel

import "errors"

// Sentinel errors for storage facts. The store layer returns these (optionally
// wrapped) so engines and services can translate them into coded domain
// errors without the store knowing about the error taxonomy.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: record does not exist in a collection
// - ErrConflict: record already present where uniqueness is required
// - ErrInvalidState: record is in a state the requested operation forbids
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
