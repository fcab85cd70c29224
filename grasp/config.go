package grasp

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/transform"
)

// DefaultPasses samples the lateral axis from below.
var DefaultPasses = []Pass{{Axis: AxisY, Direction: Down}}

// QuaternionConfig is a w + xi + yj + zk orientation.
type QuaternionConfig struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// TransformConfig describes a rigid transform. At most one of Quaternion and RotationMatrix
// may be set; with neither the rotation is the identity. RotationMatrix is row-major.
type TransformConfig struct {
	Translation    r3.Vector         `json:"translation"`
	Quaternion     *QuaternionConfig `json:"quaternion,omitempty"`
	RotationMatrix []float64         `json:"rotation_matrix,omitempty" jsonschema:"minItems=9,maxItems=9"`
}

// Pose converts the configuration, rejecting rotations that are not rigid.
func (tc *TransformConfig) Pose() (spatialmath.Pose, error) {
	if tc == nil {
		return spatialmath.NewZeroPose(), nil
	}
	var pose spatialmath.Pose
	switch {
	case tc.Quaternion != nil && tc.RotationMatrix != nil:
		return nil, errors.New("only one of quaternion and rotation_matrix may be set")
	case tc.Quaternion != nil:
		o, err := transform.NewUnitQuaternion(tc.Quaternion.W, tc.Quaternion.X, tc.Quaternion.Y, tc.Quaternion.Z,
			transform.DefaultRigidityTolerance)
		if err != nil {
			return nil, err
		}
		pose = spatialmath.NewPose(tc.Translation, o)
	case tc.RotationMatrix != nil:
		var err error
		if pose, err = transform.FromRowMajor(tc.RotationMatrix, tc.Translation, transform.DefaultRigidityTolerance); err != nil {
			return nil, err
		}
	default:
		pose = spatialmath.NewPoseFromPoint(tc.Translation)
	}
	if err := transform.CheckPose(pose, transform.DefaultRigidityTolerance); err != nil {
		return nil, err
	}
	return pose, nil
}

// Config is the per request grasp configuration. It is read only during generation.
type Config struct {
	BaseFrame     string `json:"base_frame"`
	EEParentFrame string `json:"ee_parent_frame"`
	// AngleResolution is the number of steps across the half turn.
	AngleResolution int `json:"angle_resolution"`
	// GraspDepth is the radius of the ring the gripper is placed on.
	GraspDepth                 float64          `json:"grasp_depth"`
	ApproachRetreatDesiredDist float64          `json:"approach_retreat_desired_dist"`
	ApproachRetreatMinDist     float64          `json:"approach_retreat_min_dist"`
	GraspPoseToEEF             *TransformConfig `json:"grasp_pose_to_eef,omitempty"`
	PreGraspPosture            Posture          `json:"pre_grasp_posture"`
	GraspPosture               Posture          `json:"grasp_posture"`
	// BlockSize is only used to draw the object.
	BlockSize float64 `json:"block_size,omitempty"`
	Passes    []Pass  `json:"passes,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported in a
// single ErrInvalidConfiguration error.
func (cfg *Config) Validate(path string) error {
	if cfg == nil {
		return NewInvalidConfigurationError(path, errors.New("config is nil"))
	}
	var errs error
	if cfg.BaseFrame == "" {
		errs = multierr.Append(errs, newFieldRequiredError(path, "base_frame"))
	}
	if cfg.EEParentFrame == "" {
		errs = multierr.Append(errs, newFieldRequiredError(path, "ee_parent_frame"))
	}
	if cfg.AngleResolution < 1 {
		errs = multierr.Append(errs, errors.Errorf("angle_resolution must be at least 1, got %d", cfg.AngleResolution))
	}
	if !(cfg.GraspDepth > 0) || math.IsInf(cfg.GraspDepth, 0) {
		errs = multierr.Append(errs, errors.Errorf("grasp_depth must be positive, got %v", cfg.GraspDepth))
	}
	if cfg.ApproachRetreatDesiredDist < 0 || cfg.ApproachRetreatMinDist < 0 {
		errs = multierr.Append(errs, errors.New("approach/retreat distances cannot be negative"))
	}
	if cfg.ApproachRetreatMinDist > cfg.ApproachRetreatDesiredDist {
		errs = multierr.Append(errs, errors.Errorf("approach_retreat_min_dist %v exceeds approach_retreat_desired_dist %v",
			cfg.ApproachRetreatMinDist, cfg.ApproachRetreatDesiredDist))
	}
	if cfg.BlockSize < 0 {
		errs = multierr.Append(errs, errors.Errorf("block_size cannot be negative, got %v", cfg.BlockSize))
	}
	if _, err := cfg.GraspPoseToEEF.Pose(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "malformed grasp_pose_to_eef"))
	}
	for i, pass := range cfg.Passes {
		if _, ok := axisNames[pass.Axis]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("passes.%d: unknown axis %d", i, int(pass.Axis)))
		}
		if _, ok := directionNames[pass.Direction]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("passes.%d: unknown direction %d", i, int(pass.Direction)))
		}
	}
	if errs != nil {
		return NewInvalidConfigurationError(path, errs)
	}
	return nil
}

// passes returns the configured passes, falling back to DefaultPasses.
func (cfg *Config) passes() []Pass {
	if len(cfg.Passes) == 0 {
		return DefaultPasses
	}
	return cfg.Passes
}
