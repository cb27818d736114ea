package clock

import (
	"time"

	"subscription-billing-ledger/internal/domain/ports"
)

var _ ports.Clock = System{}

// System reads the wall clock. The core never calls time.Now directly so
// tests can pin timestamps.
type System struct{}

func (System) Now() time.Time { return time.Now() }
