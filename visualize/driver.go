package visualize

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"

	"github.com/mrBelka/block-grasp-generator/grasp")

// Presenter shows generated candidates. A muted presenter silently does nothing.
type Presenter interface {
	Present(ctx context.Context, object spatialmath.Geometry, candidates []grasp.Candidate) error
	Mute()
	Unmute()
	Muted() bool
}

const (
	objectColor   = "gray"
	graspColor    = "green"
	approachColor = "blue"
	retreatColor  = "orange"

	// DefaultFrameDelay paces animation frames.
	DefaultFrameDelay = time.Millisecond
	// markerRadius is the radius of the sphere carrying a candidate's quality label.
	markerRadius = 5.0
)

var _ Presenter = (*Driver)(nil)

// Driver is a Presenter animating candidates on a Scene.
type Driver struct {
	scene      Scene
	logger     logging.Logger
	clock      clock.Clock
	frameDelay time.Duration
	steps      int
	muted      *atomic.Bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock used to pace frames.
func WithClock(clk clock.Clock) Option {
	return func(d *Driver) { d.clock = clk }
}

// WithFrameDelay sets the pause after each animation frame. Zero disables pacing.
func WithFrameDelay(delay time.Duration) Option {
	return func(d *Driver) { d.frameDelay = delay }
}

// WithSteps sets the number of frames per approach and per retreat.
func WithSteps(steps int) Option {
	return func(d *Driver) {
		if steps > 0 {
			d.steps = steps
		}
	}
}

// NewDriver returns an unmuted driver.
func NewDriver(scene Scene, logger logging.Logger, opts ...Option) *Driver {
	d := &Driver{
		scene:      scene,
		logger:     logger,
		clock:      clock.New(),
		frameDelay: DefaultFrameDelay,
		steps:      DefaultSteps,
		muted:      atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mute makes Present a no-op.
func (d *Driver) Mute() { d.muted.Store(true) }

// Unmute re-enables drawing.
func (d *Driver) Unmute() { d.muted.Store(false) }

// Muted reports whether drawing is disabled.
func (d *Driver) Muted() bool { return d.muted.Load() }

// Present clears the scene and animates every candidate. object may be nil.
func (d *Driver) Present(ctx context.Context, object spatialmath.Geometry, candidates []grasp.Candidate) error {
	if d.Muted() {
		d.logger.CDebug(ctx, "Not visualizing grasps - muted.")
		return nil
	}
	d.logger.CDebugf(ctx, "Visualizing %d grasps", len(candidates))
	if err := d.scene.RemoveAllSpatialObjects(); err != nil {
		return err
	}
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		// keep the object visible while grasps are redrawn around it
		if object != nil {
			if err := d.scene.DrawGeometry(object, objectColor); err != nil {
				return err
			}
		}
		if err := d.animate(ctx, &candidates[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) animate(ctx context.Context, c *grasp.Candidate) error {
	pose := c.Pose
	marker, err := spatialmath.NewSphere(pose, markerRadius, qualityLabel(c))
	if err != nil {
		return err
	}
	if err := d.scene.DrawGeometry(marker, graspColor); err != nil {
		return err
	}
	if err := d.scene.DrawPoses([]spatialmath.Pose{pose}, []string{graspColor}, true); err != nil {
		return err
	}
	if err := d.play(ctx, ApproachTrajectory(*c, d.steps), approachColor); err != nil {
		return err
	}
	return d.play(ctx, RetreatTrajectory(*c, d.steps), retreatColor)
}

func (d *Driver) play(ctx context.Context, frames []spatialmath.Pose, color string) error {
	for _, frame := range frames {
		if err := d.scene.DrawPoses([]spatialmath.Pose{frame}, []string{color}, true); err != nil {
			return err
		}
		if err := d.wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) wait(ctx context.Context) error {
	if d.frameDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.clock.After(d.frameDelay):
		return nil
	}
}

func qualityLabel(c *grasp.Candidate) string {
	return fmt.Sprintf("%s quality %d%%", c.Name(), int(c.Quality*100))
}
