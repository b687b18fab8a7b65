// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time. Use cases read "today" through it.
type Clock interface {
	Now() time.Time
}
