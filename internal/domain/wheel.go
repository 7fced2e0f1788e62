package domain

import "math"

const (
	fullCircle   = 360.0
	minRotations = 5
	maxRotations = 8
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// GenerateSpinRotation returns between 5 and 8 full turns plus a random
// offset, in degrees. The result is always in [1800, 3240).
func GenerateSpinRotation(rng RNG) float64 {
	fullRotations := minRotations + rng.Float64()*(maxRotations-minRotations)
	offset := rng.Float64() * fullCircle

	return fullRotations*fullCircle + offset
}

// NormalizeRotation maps any angle, negative included, into [0, 360).
func NormalizeRotation(rotation float64) float64 {
	return math.Mod(math.Mod(rotation, fullCircle)+fullCircle, fullCircle)
}

// WinningIndex returns the index of the segment under the pointer after the
// wheel has turned clockwise by finalRotation degrees.
func WinningIndex(finalRotation float64, count int) (int, error) {
	if count <= 0 {
		return 0, ErrEmptyWheel
	}

	arc := fullCircle / float64(count)
	normalized := NormalizeRotation(finalRotation)

	// The pointer is fixed at the top, so the wheel's own angle under it
	// runs opposite to the rotation.
	pointer := math.Mod(fullCircle-normalized, fullCircle)

	return int(math.Floor(pointer/arc)) % count, nil
}

// CalculateWinningSegment resolves the segment under the pointer. Segments
// are laid out clockwise in slice order starting at 0 degrees.
func CalculateWinningSegment(finalRotation float64, segments []Segment) (Segment, error) {
	idx, err := WinningIndex(finalRotation, len(segments))
	if err != nil {
		return Segment{}, err
	}
	return segments[idx], nil
}

// GenerateSegmentAngles returns the start angle of each of count segments.
func GenerateSegmentAngles(count int) []float64 {
	if count <= 0 {
		return []float64{}
	}

	arc := fullCircle / float64(count)
	angles := make([]float64, count)
	for i := range count {
		angles[i] = float64(i) * arc
	}
	return angles
}

func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
