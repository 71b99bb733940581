package commands

import (
	"errors"
	"time"

	"tracking/internal/pkg/guard"
)

var (
	ErrEscalateStaleOrdersCommandIsNotConstructed = errors.New(
		"EscalateStaleOrdersCommand must be created via NewEscalateStaleOrdersCommand constructor",
	)
	ErrObservedAtIsRequired = errors.New("observation time is required")
)

// EscalateStaleOrdersCommand triggers one escalation sweep tick: every
// non-deleted in-transit order is reclassified against the observation time
// carried by the command.
//
// Carrying the observation time explicitly keeps the sweep a pure function of
// (stored heartbeats, observedAt), so tests can trigger ticks synchronously
// at arbitrary points in time instead of waiting on a timer.
//
// Example:
//
//	cmd, err := NewEscalateStaleOrdersCommand(time.Now().UTC())
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("sweep tick failed: %v", err)
//	}
type EscalateStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	observedAt time.Time

	guard guard.ConstructorGuard
}

// NewEscalateStaleOrdersCommand creates a command for one sweep tick at the
// given observation time.
func NewEscalateStaleOrdersCommand(observedAt time.Time) (EscalateStaleOrdersCommand, error) {
	if observedAt.IsZero() {
		return EscalateStaleOrdersCommand{}, ErrObservedAtIsRequired
	}

	return EscalateStaleOrdersCommand{
		observedAt: observedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEscalateStaleOrdersCommandIsNotConstructed if validation fails.
func (c EscalateStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateStaleOrdersCommandIsNotConstructed)
}

// ObservedAt returns the observation time of the tick.
func (c EscalateStaleOrdersCommand) ObservedAt() time.Time {
	return c.observedAt
}
