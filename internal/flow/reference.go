package flow

import (
	"strconv"
	"sync/atomic"
	"time"
)

// ReferencePrefix starts every transaction reference.
const ReferencePrefix = "TXN"

// ReferenceGenerator hands out display references of the form TXN<millis>.
// The numeric part follows the clock but is strictly increasing, so references
// are unique within the process. They are not unique across processes.
type ReferenceGenerator struct {
	now  func() time.Time
	last atomic.Int64
}

func NewReferenceGenerator(now func() time.Time) *ReferenceGenerator {
	if now == nil {
		now = time.Now
	}
	return &ReferenceGenerator{now: now}
}

// Next returns the next reference.
func (g *ReferenceGenerator) Next() string {
	for {
		last := g.last.Load()
		next := g.now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return ReferencePrefix + strconv.FormatInt(next, 10)
		}
	}
}

var defaultReferences = NewReferenceGenerator(nil)

// DefaultReferences is the process-wide generator shared by all controllers.
func DefaultReferences() *ReferenceGenerator {
	return defaultReferences
}
