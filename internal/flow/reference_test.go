package flow

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var referencePattern = regexp.MustCompile(`^TXN\d+$`)

func TestReferenceGenerator_FollowsClock(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	gen := NewReferenceGenerator(func() time.Time { return now })

	ref := gen.Next()

	assert.Regexp(t, referencePattern, ref)
	assert.Equal(t, "TXN1751371200000", ref)
}

func TestReferenceGenerator_StrictlyIncreasingOnFrozenClock(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	gen := NewReferenceGenerator(func() time.Time { return now })

	assert.Equal(t, "TXN1751371200000", gen.Next())
	assert.Equal(t, "TXN1751371200001", gen.Next())
	assert.Equal(t, "TXN1751371200002", gen.Next())
}

func TestReferenceGenerator_ClockGoingBackwards(t *testing.T) {
	times := []time.Time{
		time.UnixMilli(5000),
		time.UnixMilli(1000),
	}
	i := 0
	gen := NewReferenceGenerator(func() time.Time {
		tm := times[i]
		i++
		return tm
	})

	assert.Equal(t, "TXN5000", gen.Next())
	assert.Equal(t, "TXN5001", gen.Next())
}

func TestReferenceGenerator_UniqueUnderConcurrency(t *testing.T) {
	gen := NewReferenceGenerator(nil)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ref := gen.Next()
				mu.Lock()
				seen[ref] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
