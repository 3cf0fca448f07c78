package ports

import "errors"

var (
	// ErrCommitConflict is returned when capacity seen during the eligibility
	// read was consumed by a concurrent allocation before the write.
	ErrCommitConflict = errors.New("capacity changed before commit")

	// ErrUpstreamUnavailable marks failures of an external collaborator
	// (storage, geocoder) as opposed to business rejections.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
