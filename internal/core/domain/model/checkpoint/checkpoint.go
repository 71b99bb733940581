// Package checkpoint provides the domain model for periodic location/status
// reports attached to a shipment order. Each report refreshes the owning
// order's heartbeat, which the staleness escalation sweep classifies against.
package checkpoint

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
)

var (
	// ErrCheckpointIsNotConstructed is returned when a Checkpoint was not
	// created through the NewCheckpoint or RestoreCheckpoint factory functions.
	ErrCheckpointIsNotConstructed = errors.New("Checkpoint must be created via NewCheckpoint or RestoreCheckpoint")

	// ErrLocationNameIsRequired is returned when a checkpoint is reported
	// without naming its location.
	ErrLocationNameIsRequired = errors.New("checkpoint location name is required")

	// ErrSequenceIsInvalid is returned for non-positive sequence numbers.
	ErrSequenceIsInvalid = errors.New("checkpoint sequence must be greater than 0")
)

// Checkpoint is a single location/status report for an in-transit order.
// The geographic point is optional: some reports only carry a location name.
type Checkpoint struct {
	id      kernel.UUID
	orderID kernel.UUID

	locationName string
	sequence     int
	notes        string
	point        *kernel.GeoPoint

	reportedAt time.Time
	reportedBy string

	isDeleted bool

	isConstructed bool
}

// NewCheckpoint creates a checkpoint report for the given order.
// point may be nil when no coordinates were reported.
func NewCheckpoint(
	id kernel.UUID,
	orderID kernel.UUID,
	locationName string,
	sequence int,
	notes string,
	point *kernel.GeoPoint,
	reportedAt time.Time,
	reportedBy string,
) (*Checkpoint, error) {
	c := &Checkpoint{
		notes:         notes,
		reportedAt:    reportedAt,
		reportedBy:    reportedBy,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
		c.setLocationName(locationName),
		c.setSequence(sequence),
		c.setPoint(point),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCheckpoint reconstructs a checkpoint from persistence.
func RestoreCheckpoint(
	id kernel.UUID,
	orderID kernel.UUID,
	locationName string,
	sequence int,
	notes string,
	point *kernel.GeoPoint,
	reportedAt time.Time,
	reportedBy string,
	isDeleted bool,
) (*Checkpoint, error) {
	c, err := NewCheckpoint(id, orderID, locationName, sequence, notes, point, reportedAt, reportedBy)
	if err != nil {
		return nil, err
	}
	c.isDeleted = isDeleted
	return c, nil
}

// Validate ensures the checkpoint was created through a factory function.
func (c *Checkpoint) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCheckpointIsNotConstructed
	}
	return nil
}

// ID returns the checkpoint's unique identifier.
func (c *Checkpoint) ID() kernel.UUID {
	return c.id
}

// OrderID returns the identifier of the owning order.
func (c *Checkpoint) OrderID() kernel.UUID {
	return c.orderID
}

// LocationName returns the reported location name.
func (c *Checkpoint) LocationName() string {
	return c.locationName
}

// Sequence returns the report's sequence number within the order.
func (c *Checkpoint) Sequence() int {
	return c.sequence
}

// Notes returns the free-text report notes.
func (c *Checkpoint) Notes() string {
	return c.notes
}

// Point returns the reported coordinates, or nil if none were given.
func (c *Checkpoint) Point() *kernel.GeoPoint {
	return c.point
}

// ReportedAt returns the report timestamp.
func (c *Checkpoint) ReportedAt() time.Time {
	return c.reportedAt
}

// ReportedBy returns the name of the reporting user.
func (c *Checkpoint) ReportedBy() string {
	return c.reportedBy
}

// IsDeleted reports whether the checkpoint has been soft-deleted.
func (c *Checkpoint) IsDeleted() bool {
	return c.isDeleted
}

// MarkDeleted soft-deletes the checkpoint.
func (c *Checkpoint) MarkDeleted() {
	c.isDeleted = true
}

func (c *Checkpoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Checkpoint) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *Checkpoint) setLocationName(locationName string) error {
	if locationName == "" {
		return ErrLocationNameIsRequired
	}
	c.locationName = locationName
	return nil
}

func (c *Checkpoint) setSequence(sequence int) error {
	if sequence <= 0 {
		return ErrSequenceIsInvalid
	}
	c.sequence = sequence
	return nil
}

func (c *Checkpoint) setPoint(point *kernel.GeoPoint) error {
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
