package services

import (
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// Default escalation thresholds. An in-transit order turns yellow once its
// heartbeat is 40 whole minutes old and red at 60.
const (
	DefaultYellowAfter = 40 * time.Minute
	DefaultRedAfter    = 60 * time.Minute
)

// StalenessClassifier derives a traffic-light severity from the elapsed time
// since an order's last heartbeat. It is a pure decision function: no clock,
// no side effects; callers supply the elapsed duration.
//
// Band semantics (defaults): below 40 minutes is green, 40 to 59 minutes is
// yellow, 60 minutes and beyond is red. The lower bound of each band is
// inclusive: exactly 40 minutes is already yellow, exactly 60 already red.
type StalenessClassifier struct {
	yellowAfter time.Duration
	redAfter    time.Duration
}

// NewStalenessClassifier creates a classifier with the default 40/60 minute
// thresholds.
func NewStalenessClassifier() StalenessClassifier {
	classifier, _ := NewStalenessClassifierWithThresholds(DefaultYellowAfter, DefaultRedAfter)
	return classifier
}

// NewStalenessClassifierWithThresholds creates a classifier with custom
// thresholds. yellowAfter must be positive and smaller than redAfter.
func NewStalenessClassifierWithThresholds(yellowAfter, redAfter time.Duration) (StalenessClassifier, error) {
	if yellowAfter <= 0 {
		return StalenessClassifier{}, errs.NewValueIsInvalidError("yellowAfter must be greater than 0")
	}
	if redAfter <= yellowAfter {
		return StalenessClassifier{}, errs.NewValueIsInvalidError("redAfter must be greater than yellowAfter")
	}

	return StalenessClassifier{
		yellowAfter: yellowAfter,
		redAfter:    redAfter,
	}, nil
}

// YellowAfter returns the yellow threshold.
func (c StalenessClassifier) YellowAfter() time.Duration {
	return c.yellowAfter
}

// RedAfter returns the red threshold.
func (c StalenessClassifier) RedAfter() time.Duration {
	return c.redAfter
}

// Classify maps elapsed heartbeat age to a severity level. The comparison is
// done on whole truncated minutes, matching the band table. Negative elapsed
// durations (clock skew) classify as green.
func (c StalenessClassifier) Classify(elapsed time.Duration) order.Severity {
	if elapsed < 0 {
		return order.SeverityGreen
	}

	minutes := elapsed.Truncate(time.Minute)
	switch {
	case minutes >= c.redAfter:
		return order.SeverityRed
	case minutes >= c.yellowAfter:
		return order.SeverityYellow
	default:
		return order.SeverityGreen
	}
}
