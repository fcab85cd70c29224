// Package config reads grasp generation requests.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/grasp"
)

// ObjectConfig is the object pose in the base frame.
type ObjectConfig struct {
	Translation r3.Vector                      `json:"translation"`
	Orientation *spatialmath.OrientationConfig `json:"orientation,omitempty"`
}

// Pose parses the object pose.
func (oc *ObjectConfig) Pose() (spatialmath.Pose, error) {
	if oc.Orientation == nil {
		return spatialmath.NewPoseFromPoint(oc.Translation), nil
	}
	o, err := oc.Orientation.ParseConfig()
	if err != nil {
		return nil, err
	}
	return spatialmath.NewPose(oc.Translation, o), nil
}

// Request is one object to generate grasps for.
type Request struct {
	Name   string       `json:"name,omitempty"`
	Object ObjectConfig `json:"object_pose"`
	Grasp  grasp.Config `json:"grasp"`
}

// Validate ensures all parts of the request are valid. An empty path validates a top level
// request.
func (r *Request) Validate(path string) error {
	if _, err := r.Object.Pose(); err != nil {
		return grasp.NewInvalidConfigurationError(childPath(path, "object_pose"), err)
	}
	return r.Grasp.Validate(childPath(path, "grasp"))
}

func childPath(path, field string) string {
	if path == "" {
		return field
	}
	return fmt.Sprintf("%s.%s", path, field)
}

// GraspRequest converts the request for grasp.Generator.GenerateBatch.
func (r *Request) GraspRequest() (grasp.Request, error) {
	pose, err := r.Object.Pose()
	if err != nil {
		return grasp.Request{}, errors.Wrap(err, "object_pose")
	}
	return grasp.Request{Name: r.Name, ObjectPose: pose, Config: r.Grasp}, nil
}

// ObjectGeometry returns a cube of the configured block size at the object pose, or nil when
// no block size is set.
func (r *Request) ObjectGeometry() (spatialmath.Geometry, error) {
	if r.Grasp.BlockSize <= 0 {
		return nil, nil
	}
	pose, err := r.Object.Pose()
	if err != nil {
		return nil, err
	}
	size := r.Grasp.BlockSize
	label := r.Name
	if label == "" {
		label = "block"
	}
	return spatialmath.NewBox(pose, r3.Vector{X: size, Y: size, Z: size}, label)
}
