// Package grasp generates grasp candidates around a block. Orientations are sampled over a
// half turn around one object axis per pass, turned into end effector poses in the base
// frame, and scored.
package grasp

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/transform"
)

var (
	approachDirection = r3.Vector{Z: 1}
	retreatDirection  = r3.Vector{Z: -1}
)

// Generate creates grasp candidates around an object using DefaultPolicy. Either every
// candidate of every configured pass is returned or an error is returned.
func Generate(objectPose spatialmath.Pose, cfg *Config) ([]Candidate, error) {
	return generate(DefaultPolicy, objectPose, cfg)
}

// Generator is a logged generator bound to a capability policy.
type Generator struct {
	logger logging.Logger
	policy Policy
}

// NewGenerator returns a Generator using policy.
func NewGenerator(logger logging.Logger, policy Policy) *Generator {
	return &Generator{logger: logger, policy: policy}
}

// Policy returns the capability table used by the generator.
func (g *Generator) Policy() Policy {
	return g.policy
}

// Generate is the logged equivalent of the package level Generate.
func (g *Generator) Generate(objectPose spatialmath.Pose, cfg *Config) ([]Candidate, error) {
	candidates, err := generate(g.policy, objectPose, cfg)
	if err != nil {
		g.logger.Errorw("grasp generation failed", "policy", g.policy.Name(), "error", err)
		return nil, err
	}
	g.logger.Infof("Generated %d grasps", len(candidates))
	return candidates, nil
}

func generate(policy Policy, objectPose spatialmath.Pose, cfg *Config) ([]Candidate, error) {
	if cfg == nil {
		return nil, NewInvalidConfigurationError("grasp", errors.New("configuration is required"))
	}
	if objectPose == nil {
		return nil, NewInvalidConfigurationError("object_pose", errors.New("object pose is required"))
	}
	if err := cfg.Validate("grasp"); err != nil {
		return nil, err
	}
	passes := cfg.passes()
	if err := policy.check(passes); err != nil {
		return nil, err
	}
	// Validate has already rejected a malformed correction.
	eef, err := cfg.GraspPoseToEEF.Pose()
	if err != nil {
		return nil, NewInvalidConfigurationError("grasp.grasp_pose_to_eef", err)
	}
	if err := transform.CheckPose(objectPose, transform.DefaultRigidityTolerance); err != nil {
		return nil, NewTransformCompositionError("object pose", err)
	}

	a := assembler{cfg: cfg, object: objectPose, eef: eef}
	candidates := make([]Candidate, 0, len(passes)*(cfg.AngleResolution+1))
	for _, pass := range passes {
		samples, err := SampleAxis(pass.Direction, cfg.GraspDepth, cfg.AngleResolution)
		if err != nil {
			return nil, err
		}
		for _, s := range samples {
			c, err := a.assemble(pass, s)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// assembler turns samples into candidates. nextID is owned by a single generate call.
type assembler struct {
	cfg    *Config
	object spatialmath.Pose
	eef    spatialmath.Pose
	nextID int
}

func (a *assembler) assemble(pass Pass, s Sample) (Candidate, error) {
	local, err := LocalPose(pass.Axis, s)
	if err != nil {
		return Candidate{}, err
	}
	if err := transform.CheckPose(local, transform.DefaultRigidityTolerance); err != nil {
		return Candidate{}, NewTransformCompositionError(fmt.Sprintf("local grasp pose of %s sample %d", pass, s.Index), err)
	}
	world := transform.Compose(a.object, local, a.eef)
	if err := transform.CheckPose(world, transform.DefaultRigidityTolerance); err != nil {
		return Candidate{}, NewTransformCompositionError(fmt.Sprintf("world grasp pose of %s sample %d", pass, s.Index), err)
	}

	c := Candidate{
		ID:              a.nextID,
		Frame:           a.cfg.BaseFrame,
		Pass:            pass,
		Theta:           s.Theta,
		Pose:            world,
		Quality:         Quality(s.Theta),
		PreGraspPosture: a.cfg.PreGraspPosture.clone(),
		GraspPosture:    a.cfg.GraspPosture.clone(),
		Approach: GripperTranslation{
			Frame:           a.cfg.EEParentFrame,
			Direction:       approachDirection,
			DesiredDistance: a.cfg.ApproachRetreatDesiredDist,
			MinDistance:     a.cfg.ApproachRetreatMinDist,
		},
		Retreat: GripperTranslation{
			Frame:           a.cfg.EEParentFrame,
			Direction:       retreatDirection,
			DesiredDistance: a.cfg.ApproachRetreatDesiredDist,
			MinDistance:     a.cfg.ApproachRetreatMinDist,
		},
		MaxContactForce: 0,
	}
	a.nextID++
	return c, nil
}
