// Package visualize draws grasp candidates and animates their approach and retreat in a 3D
// scene. Nothing in it is needed to generate grasps.
package visualize

import (
	"sync"

	viz "github.com/viam-labs/motion-tools/client/client"
	"go.viam.com/rdk/spatialmath"
)

// Scene is the set of drawing calls the driver needs from a 3D viewer.
type Scene interface {
	DrawGeometry(geometry spatialmath.Geometry, color string) error
	DrawPoses(poses []spatialmath.Pose, colors []string, arrowHeadAtPose bool) error
	RemoveAllSpatialObjects() error
}

type motionToolsScene struct{}

// NewMotionToolsScene returns a Scene that draws in a running motion-tools visualizer.
func NewMotionToolsScene() Scene {
	return motionToolsScene{}
}

func (motionToolsScene) DrawGeometry(geometry spatialmath.Geometry, color string) error {
	return viz.DrawGeometry(geometry, color)
}

func (motionToolsScene) DrawPoses(poses []spatialmath.Pose, colors []string, arrowHeadAtPose bool) error {
	return viz.DrawPoses(poses, colors, arrowHeadAtPose)
}

func (motionToolsScene) RemoveAllSpatialObjects() error {
	return viz.RemoveAllSpatialObjects()
}

// Drawing is one recorded scene call.
type Drawing struct {
	Kind     string
	Label    string
	Color    string
	Geometry spatialmath.Geometry
	Poses    []spatialmath.Pose
}

// RecordingScene keeps every call in memory.
type RecordingScene struct {
	mu       sync.Mutex
	drawings []Drawing
}

// DrawGeometry records a geometry.
func (rs *RecordingScene) DrawGeometry(geometry spatialmath.Geometry, color string) error {
	rs.record(Drawing{Kind: "geometry", Label: geometry.Label(), Color: color, Geometry: geometry})
	return nil
}

// DrawPoses records poses. Only the first color is kept.
func (rs *RecordingScene) DrawPoses(poses []spatialmath.Pose, colors []string, arrowHeadAtPose bool) error {
	d := Drawing{Kind: "poses", Poses: append([]spatialmath.Pose(nil), poses...)}
	if len(colors) > 0 {
		d.Color = colors[0]
	}
	rs.record(d)
	return nil
}

// RemoveAllSpatialObjects records a clear and forgets previous drawings.
func (rs *RecordingScene) RemoveAllSpatialObjects() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.drawings = []Drawing{{Kind: "clear"}}
	return nil
}

// Drawings returns a copy of what has been recorded.
func (rs *RecordingScene) Drawings() []Drawing {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]Drawing(nil), rs.drawings...)
}

func (rs *RecordingScene) record(d Drawing) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.drawings = append(rs.drawings, d)
}
