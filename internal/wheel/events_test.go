package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/spinwheel/internal/domain"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	a, releaseA := h.Subscribe()
	b, releaseB := h.Subscribe()
	defer releaseA()
	defer releaseB()

	res := SpinResult{Rotation: 1900, Winner: domain.Segment{ID: 1, Label: "A"}}
	h.Publish(res)

	assert.Equal(t, res, <-a)
	assert.Equal(t, res, <-b)
}

func TestHub_ReleaseClosesAndIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, release := h.Subscribe()
	require.Equal(t, 1, h.Subscribers())

	release()
	release()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())

	// Publishing with nobody listening is fine.
	h.Publish(SpinResult{})
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, release := h.Subscribe()
	defer release()

	for i := range eventBuffer * 3 {
		h.Publish(SpinResult{Rotation: float64(i)})
	}

	assert.Len(t, ch, eventBuffer)
	first := <-ch
	assert.Equal(t, 0.0, first.Rotation)
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub()
	ch, release := h.Subscribe()

	h.Close()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())
	release()

	late, releaseLate := h.Subscribe()
	defer releaseLate()
	_, ok = <-late
	assert.False(t, ok, "subscribing after close yields a closed channel")

	h.Publish(SpinResult{})
	h.Close()
}
