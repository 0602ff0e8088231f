package lockout

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func TestTracker_LocksAfterMaxAttempts(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(3, 30*time.Second).WithClock(clock.now)

	assert.Zero(t, tracker.Fail("x@x.com"))
	assert.Zero(t, tracker.Fail("x@x.com"))
	assert.Equal(t, 30*time.Second, tracker.Fail("x@x.com"))

	clock.current = clock.current.Add(10 * time.Second)
	assert.Equal(t, 20*time.Second, tracker.Remaining("x@x.com"))
	assert.Zero(t, tracker.Remaining("other@x.com"))
}

func TestTracker_LockExpires(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(2, time.Minute).WithClock(clock.now)

	tracker.Fail("k")
	tracker.Fail("k")
	assert.Equal(t, time.Minute, tracker.Remaining("k"))

	clock.current = clock.current.Add(time.Minute)
	assert.Zero(t, tracker.Remaining("k"))

	// После истечения счетчик начинается с нуля
	assert.Zero(t, tracker.Fail("k"))
}

func TestTracker_ResetClearsFailures(t *testing.T) {
	tracker := NewTracker(3, time.Minute)

	tracker.Fail("k")
	tracker.Fail("k")
	tracker.Reset("k")

	assert.Zero(t, tracker.Fail("k"))
	assert.Zero(t, tracker.Remaining("k"))
}

func TestTracker_PrunesIdleEntries(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(3, 30*time.Second).WithClock(clock.now)

	for i := 0; i < 50; i++ {
		tracker.Fail(fmt.Sprintf("user%d@x.com", i))
	}
	assert.Equal(t, 50, tracker.Len())

	clock.current = clock.current.Add(31 * time.Second)
	tracker.Fail("fresh@x.com")

	assert.Equal(t, 1, tracker.Len())
}

func TestTracker_PruneKeepsActiveLock(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(1, time.Minute).WithClock(clock.now)

	assert.Equal(t, time.Minute, tracker.Fail("locked"))

	clock.current = clock.current.Add(40 * time.Second)
	tracker.Fail("other")

	assert.Equal(t, 20*time.Second, tracker.Remaining("locked"))
}
