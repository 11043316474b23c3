//go:build unit

package clock_test

import (
	"sync"
	"testing"
	"time"

	"ration-slot-booking/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)
	assert.Equal(t, start, c.Now())

	assert.Equal(t, start.Add(time.Minute), c.Advance(time.Minute))

	c.Set(start)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Second)
			_ = c.Now()
		}()
	}
	wg.Wait()
	assert.Equal(t, start.Add(8*time.Second), c.Now())
}
