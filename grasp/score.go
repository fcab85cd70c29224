package grasp

import "math"

// MinQuality is the floor applied to every score; grasps near the ends of the ring are
// still usable.
const MinQuality = 0.1

// Quality scores a sample angle, preferring grasps that keep the wrist far from the
// supporting surface.
func Quality(theta float64) float64 {
	return math.Max(math.Sin(theta), MinQuality)
}
