package order

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Severity is the traffic-light staleness classification of an in-transit
// order, derived from elapsed time since the last heartbeat. It is never set
// directly by API consumers; the escalation sweep recomputes it periodically.
//
// Severity is meaningful only while the order is in transit. For all other
// statuses the stored value is stale and must be ignored.
type Severity int

const (
	// SeverityNone means the order has not been classified yet.
	// Persisted as NULL; a fresh in-transit order is classified on the
	// very next sweep tick.
	SeverityNone Severity = iota

	// SeverityGreen: recent heartbeat, shipment reporting normally.
	SeverityGreen

	// SeverityYellow: heartbeat is getting stale.
	SeverityYellow

	// SeverityRed: heartbeat is overdue, shipment considered silent.
	SeverityRed
)

// getSeverityStrings returns severities mapped to their persisted form.
// Lowercase values match the severity column contents.
func getSeverityStrings() map[Severity]string {
	return map[Severity]string{
		SeverityNone:   "none",
		SeverityGreen:  "green",
		SeverityYellow: "yellow",
		SeverityRed:    "red",
	}
}

// SeverityFromString parses a persisted severity value.
// The empty string maps to SeverityNone (a NULL column).
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "", "none":
		return SeverityNone, nil
	case "green":
		return SeverityGreen, nil
	case "yellow":
		return SeverityYellow, nil
	case "red":
		return SeverityRed, nil
	default:
		return SeverityNone, errs.NewValueIsInvalidErrorWithCause("severity is invalid",
			fmt.Errorf("%q is not a valid severity", s))
	}
}

// Validate checks that the Severity is one of the defined levels.
// SeverityNone is valid: it represents a not-yet-classified order.
func (s Severity) Validate() error {
	if _, ok := getSeverityStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("severity is invalid",
			fmt.Errorf("%d is not a valid severity", s))
	}
	return nil
}

// String returns the lowercase persisted form of the severity.
// Implements fmt.Stringer and is safe on any value.
func (s Severity) String() string {
	if str, ok := getSeverityStrings()[s]; ok {
		return str
	}
	return "none"
}
