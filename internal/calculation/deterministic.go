package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// reportIDFunc stamps each report with a unique identifier.
var reportIDFunc = func() string { return uuid.NewString() }

// SetReportIDFunc overrides the report ID provider (use only in tests).
func SetReportIDFunc(f func() string) { reportIDFunc = f }
