package grasp

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// Posture is a hand configuration handed through to candidates without inspection.
type Posture struct {
	JointNames []string  `json:"joint_names,omitempty"`
	Positions  []float64 `json:"positions,omitempty"`
	Velocities []float64 `json:"velocities,omitempty"`
	Efforts    []float64 `json:"efforts,omitempty"`
}

func (p Posture) clone() Posture {
	return Posture{
		JointNames: append([]string(nil), p.JointNames...),
		Positions:  append([]float64(nil), p.Positions...),
		Velocities: append([]float64(nil), p.Velocities...),
		Efforts:    append([]float64(nil), p.Efforts...),
	}
}

// GripperTranslation is a straight line motion of the gripper expressed in Frame.
type GripperTranslation struct {
	Frame           string    `json:"frame"`
	Direction       r3.Vector `json:"direction"`
	DesiredDistance float64   `json:"desired_distance"`
	MinDistance     float64   `json:"min_distance"`
}

// Candidate is one end effector target with its score and approach/retreat motions.
type Candidate struct {
	ID    int
	Frame string
	Pass  Pass
	Theta float64
	// Pose is the grasp pose in Frame.
	Pose            spatialmath.Pose
	Quality         float64
	PreGraspPosture Posture
	GraspPosture    Posture
	Approach        GripperTranslation
	Retreat         GripperTranslation
	// MaxContactForce <= 0 disables force limiting.
	MaxContactForce float64
}

// Name returns the display name of the candidate.
func (c *Candidate) Name() string {
	return fmt.Sprintf("Grasp%d", c.ID)
}
