// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for specific screens.
package queries

import (
	"errors"
	"fmt"

	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"
)

// readError marks a failed read as an unavailable store unless the read
// model already classified it.
func readError(op string, err error) error {
	if errors.Is(err, ports.ErrUpstreamUnavailable) || errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ports.ErrUpstreamUnavailable, op, err)
}
