package grasp

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/transform"
)

// Axis is a principal axis of the object frame that grasps are sampled around.
type Axis int

const (
	// AxisX is the object's depth axis.
	AxisX Axis = iota
	// AxisY is the object's lateral axis.
	AxisY
	// AxisZ is the object's vertical axis.
	AxisZ
)

var axisNames = map[Axis]string{AxisX: "x", AxisY: "y", AxisZ: "z"}

func (a Axis) String() string {
	if name, ok := axisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	name, ok := axisNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown axis %d", int(a))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	for axis, name := range axisNames {
		if strings.EqualFold(string(text), name) {
			*a = axis
			return nil
		}
	}
	return fmt.Errorf("unknown axis %q, expected one of x, y, z", string(text))
}

// Direction selects which side of the object the gripper approaches from.
type Direction int

const (
	// Up leaves the gripper orientation as sampled.
	Up Direction = iota
	// Down flips the gripper half a turn about its x axis.
	Down
)

var directionNames = map[Direction]string{Up: "up", Down: "down"}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	name, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	for dir, name := range directionNames {
		if strings.EqualFold(string(text), name) {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q, expected up or down", string(text))
}

// flipAngle is the rotation about the gripper x axis selecting the approach side.
func (d Direction) flipAngle() float64 {
	if d == Down {
		return math.Pi
	}
	return 0
}

// Pass is one sampling sweep: an axis and an approach direction.
type Pass struct {
	Axis      Axis      `json:"axis"`
	Direction Direction `json:"direction"`
}

func (p Pass) String() string {
	return p.Axis.String() + "/" + p.Direction.String()
}

var (
	unitX = r3.Vector{X: 1}
	unitY = r3.Vector{Y: 1}
	unitZ = r3.Vector{Z: 1}
)

// axisRule holds the closed-form composition for one sampling axis. The two implemented
// axes deliberately differ in rotation order and sign; swapping them mirrors the grasps.
type axisRule struct {
	orientation func(theta, flip float64) spatialmath.Pose
	position    func(ring r3.Vector) r3.Vector
}

var axisRules = map[Axis]axisRule{
	AxisX: {
		orientation: func(theta, flip float64) spatialmath.Pose {
			return transform.Compose(
				transform.RotationAbout(unitX, theta),
				transform.RotationAbout(unitZ, -0.5*math.Pi),
				transform.RotationAbout(unitX, flip),
			)
		},
		position: func(ring r3.Vector) r3.Vector {
			return r3.Vector{X: ring.Y, Y: ring.X, Z: ring.Z}
		},
	},
	AxisY: {
		orientation: func(theta, flip float64) spatialmath.Pose {
			return transform.Compose(
				transform.RotationAbout(unitY, math.Pi-theta),
				transform.RotationAbout(unitX, flip),
			)
		},
		position: func(ring r3.Vector) r3.Vector {
			return ring
		},
	},
}

// LocalPose returns the grasp pose of a sample in the object frame for the given axis.
func LocalPose(axis Axis, s Sample) (spatialmath.Pose, error) {
	rule, ok := axisRules[axis]
	if !ok {
		return nil, NewUnsupportedAxisError(Pass{Axis: axis, Direction: s.Direction})
	}
	return transform.WithTranslation(rule.orientation(s.Theta, s.Direction.flipAngle()), rule.position(s.Ring)), nil
}
