package ports

import "time"

// Clock supplies the current time to operations that stamp receipts or
// subscription windows. Passing it explicitly keeps the core testable
// without a live host; implementations must be non-decreasing across calls
// but need not be strictly increasing.
type Clock interface {
	Now() time.Time
}
