package domain_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/spinwheel/internal/domain"
)

// sequenceRNG returns values from a pre-set sequence.
type sequenceRNG struct {
	values []float64
	idx    int
}

func (r *sequenceRNG) Float64() float64 {
	v := r.values[r.idx%len(r.values)]
	r.idx++
	return v
}

func labeled(labels ...string) []domain.Segment {
	segments := make([]domain.Segment, len(labels))
	for i, l := range labels {
		segments[i] = domain.Segment{ID: int64(i + 1), Label: l, Color: "from-red-500 to-red-600", Order: i}
	}
	return segments
}

func TestGenerateSpinRotation_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 10000 {
		v := domain.GenerateSpinRotation(rng)
		require.GreaterOrEqual(t, v, 1800.0)
		require.Less(t, v, 3240.0)
	}
}

func TestGenerateSpinRotation_Extremes(t *testing.T) {
	low := domain.GenerateSpinRotation(&sequenceRNG{values: []float64{0, 0}})
	assert.Equal(t, 1800.0, low)

	high := domain.GenerateSpinRotation(&sequenceRNG{values: []float64{0.999, 0.999}})
	assert.InDelta(t, 7.997*360+0.999*360, high, 1e-9)
	assert.Less(t, high, 3240.0)
}

func TestCalculateWinningSegment_Examples(t *testing.T) {
	segments := []domain.Segment{
		{ID: 1, Label: "A", Order: 0},
		{ID: 2, Label: "B", Order: 1},
	}

	tests := []struct {
		rotation float64
		want     string
	}{
		{rotation: 90, want: "B"},
		{rotation: 270, want: "A"},
		{rotation: 0, want: "A"},
		{rotation: 360, want: "A"},
		{rotation: 180, want: "B"},
		{rotation: -90, want: "A"},
		{rotation: 1800 + 90, want: "B"},
	}
	for _, tt := range tests {
		got, err := domain.CalculateWinningSegment(tt.rotation, segments)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Label, "rotation %v", tt.rotation)
	}
}

func TestCalculateWinningSegment_ReturnsWholeSegment(t *testing.T) {
	segments := []domain.Segment{
		{ID: 7, Label: "Apple", Color: "from-red-500 to-red-600", Order: 0},
		{ID: 9, Label: "Pear", Color: "from-lime-500 to-lime-600", Order: 1},
	}

	got, err := domain.CalculateWinningSegment(90, segments)

	require.NoError(t, err)
	assert.Equal(t, segments[1], got)
}

func TestCalculateWinningSegment_Deterministic(t *testing.T) {
	segments := labeled("a", "b", "c", "d", "e", "f", "g")
	rng := rand.New(rand.NewPCG(3, 4))

	for range 1000 {
		r := domain.GenerateSpinRotation(rng)
		first, err := domain.CalculateWinningSegment(r, segments)
		require.NoError(t, err)
		second, err := domain.CalculateWinningSegment(r, segments)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestCalculateWinningSegment_Wraparound(t *testing.T) {
	for n := 1; n <= 12; n++ {
		segments := labeled(make([]string, n)...)

		atZero, err := domain.CalculateWinningSegment(0, segments)
		require.NoError(t, err)
		atFull, err := domain.CalculateWinningSegment(360, segments)
		require.NoError(t, err)

		assert.Equal(t, atZero, atFull, "n=%d", n)
	}
}

func TestCalculateWinningSegment_CoversEveryArc(t *testing.T) {
	const step = 0.25

	for n := 1; n <= 12; n++ {
		segments := labeled(make([]string, n)...)
		hits := make(map[int64]int)
		transitions := 0
		var prev int64

		for i := 0; float64(i)*step < 360; i++ {
			r := float64(i) * step
			got, err := domain.CalculateWinningSegment(r, segments)
			require.NoError(t, err)

			if i > 0 && got.ID != prev {
				transitions++
			}
			prev = got.ID
			hits[got.ID]++
		}

		require.Len(t, hits, n, "every segment must win somewhere, n=%d", n)

		// Arcs are contiguous: the sweep enters each arc exactly once,
		// except index 0 which is split across 0 and 360 degrees.
		if n > 1 {
			assert.Equal(t, n, transitions, "n=%d", n)
		}

		samplesPerArc := 360 / step / float64(n)
		for id, count := range hits {
			assert.InDelta(t, samplesPerArc, float64(count), 2, "segment %d, n=%d", id, n)
		}
	}
}

func TestCalculateWinningSegment_EmptyWheel(t *testing.T) {
	for _, r := range []float64{0, 90, -45, 3000} {
		_, err := domain.CalculateWinningSegment(r, nil)
		require.ErrorIs(t, err, domain.ErrEmptyWheel)

		_, err = domain.CalculateWinningSegment(r, []domain.Segment{})
		require.ErrorIs(t, err, domain.ErrEmptyWheel)
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{725, 5},
		{-30, 330},
		{-360, 0},
		{-725, 355},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, domain.NormalizeRotation(tt.in), 1e-9, "in=%v", tt.in)
	}
}

func TestWinningIndex_MatchesSegment(t *testing.T) {
	segments := labeled("a", "b", "c", "d", "e")

	for r := -720.0; r < 720; r += 7.5 {
		idx, err := domain.WinningIndex(r, len(segments))
		require.NoError(t, err)
		seg, err := domain.CalculateWinningSegment(r, segments)
		require.NoError(t, err)
		require.Equal(t, segments[idx], seg)
	}
}

func TestGenerateSegmentAngles(t *testing.T) {
	assert.Equal(t, []float64{0, 90, 180, 270}, domain.GenerateSegmentAngles(4))
	assert.Equal(t, []float64{0}, domain.GenerateSegmentAngles(1))
	assert.Empty(t, domain.GenerateSegmentAngles(0))

	// Layout and winner logic share the arc convention: the start angle of
	// segment i sits under the pointer after rotating by 360 minus that angle.
	segments := labeled("a", "b", "c", "d", "e", "f")
	for i, start := range domain.GenerateSegmentAngles(len(segments)) {
		mid := start + 360.0/float64(len(segments))/2
		got, err := domain.CalculateWinningSegment(360-mid, segments)
		require.NoError(t, err)
		assert.Equal(t, segments[i], got)
	}
}

func TestAngleConversions(t *testing.T) {
	assert.InDelta(t, math.Pi, domain.DegreesToRadians(180), 1e-12)
	assert.InDelta(t, 90.0, domain.RadiansToDegrees(math.Pi/2), 1e-12)
}

func TestRandomColor(t *testing.T) {
	assert.Equal(t, domain.Palette[0], domain.RandomColor(&sequenceRNG{values: []float64{0}}))
	assert.Equal(t, domain.Palette[len(domain.Palette)-1],
		domain.RandomColor(&sequenceRNG{values: []float64{math.Nextafter(1, 0)}}))
	assert.Equal(t, domain.Palette[6], domain.RandomColor(&sequenceRNG{values: []float64{0.5}}))
}
