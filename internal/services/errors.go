package services

import "errors"

// Per-record failure kinds. All of them are non-fatal to a batch run; the
// orchestrator records them and moves on to the next record.
var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidState      = errors.New("application is not in a valid state for this transition")
	ErrGenerationFailure = errors.New("email generation failed")
	ErrDeliveryFailure   = errors.New("email delivery failed")
)

// Batch-fatal conditions.
var (
	ErrResumeMissing    = errors.New("no resume uploaded")
	ErrResumeUnreadable = errors.New("no text could be extracted from the resume PDF")
	ErrBatchInProgress  = errors.New("an outreach batch is already running for this user")
)
