package visualize

import (
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/grasp"
	"github.com/mrBelka/block-grasp-generator/transform"
)

// DefaultSteps is the number of frames used across the approach distance.
const DefaultSteps = 10

// ApproachTrajectory returns steps poses moving along the approach direction toward the
// grasp pose. The first frame is the full desired distance away; the grasp pose itself is not
// included. The direction is rotated by the grasp orientation since it is expressed relative
// to the gripper.
func ApproachTrajectory(c grasp.Candidate, steps int) []spatialmath.Pose {
	dir := transform.Rotate(c.Pose, c.Approach.Direction)
	frames := make([]spatialmath.Pose, 0, steps)
	for k := 0; k < steps; k++ {
		remaining := 1 - float64(k)/float64(steps)
		frames = append(frames, transform.WithTranslation(c.Pose, c.Pose.Point().Sub(dir.Mul(c.Approach.DesiredDistance*remaining))))
	}
	return frames
}

// RetreatTrajectory returns steps poses moving away from the grasp pose along the retreat
// direction, ending at the full desired distance.
func RetreatTrajectory(c grasp.Candidate, steps int) []spatialmath.Pose {
	dir := transform.Rotate(c.Pose, c.Retreat.Direction)
	frames := make([]spatialmath.Pose, 0, steps)
	for k := 1; k <= steps; k++ {
		travelled := c.Retreat.DesiredDistance * float64(k) / float64(steps)
		frames = append(frames, transform.WithTranslation(c.Pose, c.Pose.Point().Add(dir.Mul(travelled))))
	}
	return frames
}
