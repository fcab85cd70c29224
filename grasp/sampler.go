package grasp

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Sample is one evenly spaced position on the half ring around the sampling axis.
type Sample struct {
	Index     int
	Theta     float64
	Direction Direction
	// Ring is the approach point in ring coordinates: x = r cos(theta), y = 0, z = r sin(theta).
	Ring r3.Vector
}

// SampleAxis returns resolution+1 samples spanning [0, pi] on a ring of the given radius.
func SampleAxis(dir Direction, radius float64, resolution int) ([]Sample, error) {
	if resolution < 1 {
		return nil, NewInvalidConfigurationError("angle_resolution", errors.Errorf("must be at least 1, got %d", resolution))
	}
	step := math.Pi / float64(resolution)
	samples := make([]Sample, 0, resolution+1)
	for i := 0; i <= resolution; i++ {
		theta := float64(i) * step
		samples = append(samples, Sample{
			Index:     i,
			Theta:     theta,
			Direction: dir,
			Ring:      r3.Vector{X: radius * math.Cos(theta), Z: radius * math.Sin(theta)},
		})
	}
	return samples, nil
}
