package repository

import "errors"

var (
	// ErrVersionConflict is returned when a milestone-array write was based on
	// a case version that is no longer current.
	ErrVersionConflict = errors.New("case was modified concurrently")

	// ErrCaseAlreadyAssigned rejects an approval race loser: the case picked
	// up an assigned lawyer between read and commit.
	ErrCaseAlreadyAssigned = errors.New("case already has an assigned lawyer")

	// ErrApplicationNotPending rejects approval or denial of an application
	// that already reached a terminal status.
	ErrApplicationNotPending = errors.New("application is not pending")
)
