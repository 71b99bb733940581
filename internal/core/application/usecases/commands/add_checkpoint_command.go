package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrAddCheckpointCommandIsNotConstructed = errors.New(
		"AddCheckpointCommand must be created via NewAddCheckpointCommand constructor",
	)
	ErrLocationNameIsRequired = errors.New("checkpoint location name is required")
	ErrSequenceIsInvalid      = errors.New("checkpoint sequence must be greater than 0")
)

// AddCheckpointCommand represents a periodic location/status report for an
// in-transit order. Recording a checkpoint refreshes the order's heartbeat,
// which resets the staleness clock consumed by the escalation sweep.
type AddCheckpointCommand struct { //nolint:recvcheck //using for validation
	checkpointID kernel.UUID
	orderID      kernel.UUID
	locationName string
	sequence     int
	notes        string
	point        *kernel.GeoPoint
	reportedBy   string
	actor        actor.Actor

	guard guard.ConstructorGuard
}

// NewAddCheckpointCommand creates a command to record a checkpoint report.
// point may be nil when no coordinates were reported; reportedBy is the
// display name stored with the report.
func NewAddCheckpointCommand(
	checkpointID kernel.UUID,
	orderID kernel.UUID,
	locationName string,
	sequence int,
	notes string,
	point *kernel.GeoPoint,
	reportedBy string,
	requestedBy actor.Actor,
) (AddCheckpointCommand, error) {
	cmd := AddCheckpointCommand{
		notes:      notes,
		reportedBy: reportedBy,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCheckpointID(checkpointID),
		cmd.setOrderID(orderID),
		cmd.setLocationName(locationName),
		cmd.setSequence(sequence),
		cmd.setPoint(point),
		cmd.setActor(requestedBy),
	); err != nil {
		return AddCheckpointCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddCheckpointCommandIsNotConstructed if validation fails.
func (c AddCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrAddCheckpointCommandIsNotConstructed)
}

// CheckpointID returns the unique identifier for the new checkpoint.
func (c AddCheckpointCommand) CheckpointID() kernel.UUID {
	return c.checkpointID
}

// OrderID returns the identifier of the reported order.
func (c AddCheckpointCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationName returns the reported location name.
func (c AddCheckpointCommand) LocationName() string {
	return c.locationName
}

// Sequence returns the report's sequence number.
func (c AddCheckpointCommand) Sequence() int {
	return c.sequence
}

// Notes returns the free-text report notes.
func (c AddCheckpointCommand) Notes() string {
	return c.notes
}

// Point returns the reported coordinates, or nil.
func (c AddCheckpointCommand) Point() *kernel.GeoPoint {
	return c.point
}

// ReportedBy returns the display name of the reporting user.
func (c AddCheckpointCommand) ReportedBy() string {
	return c.reportedBy
}

// Actor returns the requesting actor.
func (c AddCheckpointCommand) Actor() actor.Actor {
	return c.actor
}

func (c *AddCheckpointCommand) setCheckpointID(checkpointID kernel.UUID) error {
	if err := checkpointID.Validate(); err != nil {
		return err
	}

	c.checkpointID = checkpointID
	return nil
}

func (c *AddCheckpointCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddCheckpointCommand) setLocationName(locationName string) error {
	if locationName == "" {
		return ErrLocationNameIsRequired
	}

	c.locationName = locationName
	return nil
}

func (c *AddCheckpointCommand) setSequence(sequence int) error {
	if sequence <= 0 {
		return ErrSequenceIsInvalid
	}

	c.sequence = sequence
	return nil
}

func (c *AddCheckpointCommand) setPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}

	p := *point
	c.point = &p
	return nil
}

func (c *AddCheckpointCommand) setActor(requestedBy actor.Actor) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
