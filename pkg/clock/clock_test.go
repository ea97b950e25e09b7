package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teachpad/learning-assist/pkg/clock"
)

func TestFreezeAt(t *testing.T) {
	defer clock.Unfreeze()

	frozen := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	testClock := clock.FreezeAt(frozen)

	assert.Equal(t, frozen, clock.Now())
	assert.Equal(t, frozen, clock.Now()) // does not advance

	testClock.FastForward(10 * time.Minute)
	assert.Equal(t, frozen.Add(10*time.Minute), clock.Now())

	clock.Unfreeze()
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Minute)
}
