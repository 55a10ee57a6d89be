package applications

import "errors"

var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrCaseNotOpen         = errors.New("case is not open for applications")
	ErrAlreadyApplied      = errors.New("lawyer already has an active application for this case")
	ErrAlreadyAssigned     = errors.New("case already has an assigned lawyer")
	ErrNotPending          = errors.New("application is not pending")
	ErrForbidden           = errors.New("not allowed")
)
