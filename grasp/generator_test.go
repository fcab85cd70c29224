package grasp

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/test"

	"github.com/mrBelka/block-grasp-generator/transform"
)

func testConfig() *Config {
	return &Config{
		BaseFrame:                  "base_link",
		EEParentFrame:              "gripper_roll_link",
		AngleResolution:            16,
		GraspDepth:                 0.12,
		ApproachRetreatDesiredDist: 0.1,
		ApproachRetreatMinDist:     0.05,
		GraspPoseToEEF: &TransformConfig{
			Translation: r3.Vector{X: -0.03},
			Quaternion:  &QuaternionConfig{W: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
		},
		PreGraspPosture: Posture{JointNames: []string{"finger"}, Positions: []float64{0.8}},
		GraspPosture:    Posture{JointNames: []string{"finger"}, Positions: []float64{0.1}, Efforts: []float64{2}},
	}
}

// assertRotates checks the orientation of pose through rdk composition alone.
func assertRotates(t *testing.T, pose spatialmath.Pose, v, expected r3.Vector) {
	t.Helper()
	rotated := spatialmath.Compose(spatialmath.NewPoseFromOrientation(pose.Orientation()), spatialmath.NewPoseFromPoint(v)).Point()
	test.That(t, rotated.X, test.ShouldAlmostEqual, expected.X, 1e-9)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, expected.Y, 1e-9)
	test.That(t, rotated.Z, test.ShouldAlmostEqual, expected.Z, 1e-9)
}

func TestCandidateCount(t *testing.T) {
	pose := spatialmath.NewPose(r3.Vector{X: 0.4, Y: -0.1, Z: 0.02}, &spatialmath.OrientationVectorDegrees{OZ: 1, Theta: 30})
	for _, resolution := range []int{1, 2, 3, 4, 7, 16, 100} {
		cfg := testConfig()
		cfg.AngleResolution = resolution
		candidates, err := Generate(pose, cfg)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, candidates, test.ShouldHaveLength, resolution+1)
	}

	t.Run("one sweep per pass", func(t *testing.T) {
		cfg := testConfig()
		cfg.AngleResolution = 5
		cfg.Passes = DefaultPolicy.SupportedPasses()
		candidates, err := Generate(pose, cfg)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, candidates, test.ShouldHaveLength, 4*6)
	})
}

func TestQualityProfile(t *testing.T) {
	cfg := testConfig()
	cfg.AngleResolution = 100
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)

	peak := 0
	for i, c := range candidates {
		test.That(t, c.Quality, test.ShouldBeBetweenOrEqual, MinQuality, 1.0)
		if c.Quality > candidates[peak].Quality {
			peak = i
		}
	}
	test.That(t, candidates[peak].Theta, test.ShouldAlmostEqual, math.Pi/2, 1e-12)
	test.That(t, candidates[peak].Quality, test.ShouldAlmostEqual, 1.0, 1e-12)
	for i := 1; i <= peak; i++ {
		test.That(t, candidates[i].Quality, test.ShouldBeGreaterThanOrEqualTo, candidates[i-1].Quality)
	}
	for i := peak + 1; i < len(candidates); i++ {
		test.That(t, candidates[i].Quality, test.ShouldBeLessThanOrEqualTo, candidates[i-1].Quality)
	}

	// sin(0) and sin(pi) are floored
	test.That(t, candidates[0].Quality, test.ShouldEqual, MinQuality)
	test.That(t, candidates[100].Quality, test.ShouldEqual, MinQuality)
	test.That(t, candidates[1].Quality, test.ShouldEqual, MinQuality)
}

func TestCandidateIDs(t *testing.T) {
	cfg := testConfig()
	cfg.AngleResolution = 3
	cfg.Passes = []Pass{{AxisY, Down}, {AxisX, Up}}
	for run := 0; run < 2; run++ {
		candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
		test.That(t, err, test.ShouldBeNil)
		for i, c := range candidates {
			// the counter belongs to the call and restarts every time
			test.That(t, c.ID, test.ShouldEqual, i)
		}
		test.That(t, candidates[0].Name(), test.ShouldEqual, "Grasp0")
		test.That(t, candidates[4].Pass, test.ShouldResemble, Pass{AxisX, Up})
	}
}

func TestRoundTrip(t *testing.T) {
	objectPose := spatialmath.NewPose(
		r3.Vector{X: 1, Y: -2, Z: 0.5},
		&spatialmath.OrientationVectorDegrees{OX: 0.3, OY: -0.2, OZ: 1, Theta: 70},
	)
	cfg := testConfig()
	cfg.AngleResolution = 9
	cfg.Passes = DefaultPolicy.SupportedPasses()

	candidates, err := Generate(objectPose, cfg)
	test.That(t, err, test.ShouldBeNil)
	eef, err := cfg.GraspPoseToEEF.Pose()
	test.That(t, err, test.ShouldBeNil)

	for _, c := range candidates {
		samples, err := SampleAxis(c.Pass.Direction, cfg.GraspDepth, cfg.AngleResolution)
		test.That(t, err, test.ShouldBeNil)
		local, err := LocalPose(c.Pass.Axis, samples[c.ID%(cfg.AngleResolution+1)])
		test.That(t, err, test.ShouldBeNil)

		recovered := transform.Compose(transform.Inverse(objectPose), c.Pose, transform.Inverse(eef))
		test.That(t, transform.AlmostEqual(recovered, local, 1e-9), test.ShouldBeTrue)
	}
}

func TestApproachRetreat(t *testing.T) {
	cfg := testConfig()
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)
	for _, c := range candidates {
		test.That(t, c.Retreat.Direction, test.ShouldResemble, c.Approach.Direction.Mul(-1))
		test.That(t, c.Approach.Direction, test.ShouldResemble, r3.Vector{Z: 1})
		test.That(t, c.Approach.Frame, test.ShouldEqual, "gripper_roll_link")
		test.That(t, c.Retreat.Frame, test.ShouldEqual, "gripper_roll_link")
		test.That(t, c.Approach.DesiredDistance, test.ShouldEqual, 0.1)
		test.That(t, c.Retreat.DesiredDistance, test.ShouldEqual, 0.1)
		test.That(t, c.Approach.MinDistance, test.ShouldEqual, 0.05)
		test.That(t, c.Retreat.MinDistance, test.ShouldEqual, 0.05)
		test.That(t, c.MaxContactForce, test.ShouldEqual, 0.0)
		test.That(t, c.Frame, test.ShouldEqual, "base_link")
	}
}

func TestPosturesPassThrough(t *testing.T) {
	cfg := testConfig()
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, candidates[3].GraspPosture, test.ShouldResemble, cfg.GraspPosture)
	test.That(t, candidates[3].PreGraspPosture, test.ShouldResemble, cfg.PreGraspPosture)

	cfg.GraspPosture.Positions[0] = 42
	test.That(t, candidates[3].GraspPosture.Positions[0], test.ShouldEqual, 0.1)
}

func TestLateralAxisFromBelow(t *testing.T) {
	cfg := testConfig()
	cfg.GraspPoseToEEF = nil
	cfg.AngleResolution = 4
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, candidates, test.ShouldHaveLength, 5)

	expectedQuality := []float64{0.1, math.Sqrt2 / 2, 1, math.Sqrt2 / 2, 0.1}
	for i, c := range candidates {
		theta := float64(i) * math.Pi / 4
		test.That(t, c.Theta, test.ShouldAlmostEqual, theta, 1e-12)
		test.That(t, c.Quality, test.ShouldAlmostEqual, expectedQuality[i], 1e-9)

		p := c.Pose.Point()
		test.That(t, p.X, test.ShouldAlmostEqual, 0.12*math.Cos(theta), 1e-12)
		test.That(t, p.Y, test.ShouldAlmostEqual, 0, 1e-12)
		test.That(t, p.Z, test.ShouldAlmostEqual, 0.12*math.Sin(theta), 1e-12)

		// gripper x axis flipped half a turn
		expected := transform.WithTranslation(transform.Compose(
			transform.RotationAbout(r3.Vector{Y: 1}, math.Pi-theta),
			transform.RotationAbout(r3.Vector{X: 1}, math.Pi),
		), p)
		test.That(t, transform.AlmostEqual(c.Pose, expected, 1e-9), test.ShouldBeTrue)

		// the columns of Ry(pi-theta)Rx(pi), worked out by hand
		assertRotates(t, c.Pose, r3.Vector{X: 1}, r3.Vector{X: -math.Cos(theta), Z: -math.Sin(theta)})
		assertRotates(t, c.Pose, r3.Vector{Y: 1}, r3.Vector{Y: -1})
		assertRotates(t, c.Pose, r3.Vector{Z: 1}, r3.Vector{X: -math.Sin(theta), Z: math.Cos(theta)})
	}
}

func TestTranslatedObject(t *testing.T) {
	cfg := testConfig()
	cfg.GraspDepth = 0.1
	cfg.AngleResolution = 1
	cfg.GraspPoseToEEF = &TransformConfig{Translation: r3.Vector{Z: 0.05}}

	candidates, err := Generate(spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3}), cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, candidates, test.ShouldHaveLength, 2)

	// theta 0: Ry(pi)Rx(pi) is diag(-1, -1, 1), the correction stays along +z
	p := candidates[0].Pose.Point()
	test.That(t, p.X, test.ShouldAlmostEqual, 1.1, 1e-12)
	test.That(t, p.Y, test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, p.Z, test.ShouldAlmostEqual, 3.05, 1e-12)

	// theta pi: Rx(pi) sends the correction to -z
	p = candidates[1].Pose.Point()
	test.That(t, p.X, test.ShouldAlmostEqual, 0.9, 1e-12)
	test.That(t, p.Y, test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, p.Z, test.ShouldAlmostEqual, 2.95, 1e-12)
}

func TestDepthAxisPlacement(t *testing.T) {
	cfg := testConfig()
	cfg.GraspPoseToEEF = nil
	cfg.AngleResolution = 2
	cfg.Passes = []Pass{{AxisX, Up}}
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)

	mid := candidates[1]
	mp := mid.Pose.Point()
	test.That(t, mp.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, mp.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, mp.Z, test.ShouldAlmostEqual, 0.12, 1e-12)
	test.That(t, candidates[0].Pose.Point().Y, test.ShouldAlmostEqual, 0.12, 1e-12)

	expected := transform.WithTranslation(transform.Compose(
		transform.RotationAbout(r3.Vector{X: 1}, math.Pi/2),
		transform.RotationAbout(r3.Vector{Z: 1}, -math.Pi/2),
	), mp)
	test.That(t, transform.AlmostEqual(mid.Pose, expected, 1e-9), test.ShouldBeTrue)

	// Rx(pi/2)Rz(-pi/2): x to -z, y to x, z to -y
	assertRotates(t, mid.Pose, r3.Vector{X: 1}, r3.Vector{Z: -1})
	assertRotates(t, mid.Pose, r3.Vector{Y: 1}, r3.Vector{X: 1})
	assertRotates(t, mid.Pose, r3.Vector{Z: 1}, r3.Vector{Y: -1})
}

func TestGenerateErrors(t *testing.T) {
	t.Run("zero resolution", func(t *testing.T) {
		cfg := testConfig()
		cfg.AngleResolution = 0
		candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
		test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("z axis", func(t *testing.T) {
		cfg := testConfig()
		cfg.Passes = []Pass{{AxisY, Down}, {AxisZ, Up}}
		candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
		test.That(t, errors.Is(err, ErrUnsupportedAxis), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "z axis")
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("disabled by policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.Passes = []Pass{{AxisX, Down}}
		g := NewGenerator(logging.NewTestLogger(t), ReferencePolicy)
		candidates, err := g.Generate(spatialmath.NewZeroPose(), cfg)
		test.That(t, errors.Is(err, ErrUnsupportedAxis), test.ShouldBeTrue)
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("non orthonormal correction", func(t *testing.T) {
		cfg := testConfig()
		cfg.GraspPoseToEEF = &TransformConfig{RotationMatrix: []float64{1, 0, 0, 0, 2, 0, 0, 0, 1}}
		candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
		test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
		test.That(t, errors.Is(err, transform.ErrNotRigid), test.ShouldBeTrue)
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("non finite object pose", func(t *testing.T) {
		candidates, err := Generate(spatialmath.NewPoseFromPoint(r3.Vector{X: math.NaN()}), testConfig())
		test.That(t, errors.Is(err, ErrTransformComposition), test.ShouldBeTrue)
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("nil object pose", func(t *testing.T) {
		candidates, err := Generate(nil, testConfig())
		test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "object_pose")
		test.That(t, candidates, test.ShouldBeNil)
	})

	t.Run("nil config", func(t *testing.T) {
		candidates, err := Generate(spatialmath.NewZeroPose(), nil)
		test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
		test.That(t, candidates, test.ShouldBeNil)
	})
}

func TestGeneratorLogging(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	g := NewGenerator(logger, ReferencePolicy)
	test.That(t, g.Policy().Name(), test.ShouldEqual, "reference")

	cfg := testConfig()
	candidates, err := g.Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("Generated 17 grasps").Len(), test.ShouldEqual, 1)

	plain, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, candidates, test.ShouldResemble, plain)

	cfg.AngleResolution = -1
	_, err = g.Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, logs.FilterMessage("grasp generation failed").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterField(zap.String("policy", "reference")).Len(), test.ShouldEqual, 1)
}

func TestGenerateBatch(t *testing.T) {
	g := NewGenerator(logging.NewTestLogger(t), DefaultPolicy)
	var requests []Request
	for i := 0; i < 8; i++ {
		cfg := *testConfig()
		cfg.AngleResolution = i + 1
		requests = append(requests, Request{
			Name:       "block",
			ObjectPose: spatialmath.NewPoseFromPoint(r3.Vector{X: float64(i)}),
			Config:     cfg,
		})
	}

	results, err := g.GenerateBatch(context.Background(), requests, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, 8)
	for i, candidates := range results {
		test.That(t, candidates, test.ShouldHaveLength, i+2)
		expected, err := Generate(requests[i].ObjectPose, &requests[i].Config)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, candidates, test.ShouldResemble, expected)
	}

	requests[5].Config.AngleResolution = 0
	results, err = g.GenerateBatch(context.Background(), requests, 0)
	test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
	test.That(t, results, test.ShouldBeNil)
}

func TestSummarize(t *testing.T) {
	test.That(t, Summarize(nil), test.ShouldResemble, Summary{})

	cfg := testConfig()
	cfg.AngleResolution = 4
	candidates, err := Generate(spatialmath.NewZeroPose(), cfg)
	test.That(t, err, test.ShouldBeNil)

	summary := Summarize(candidates)
	test.That(t, summary.Count, test.ShouldEqual, 5)
	test.That(t, summary.Best.ID, test.ShouldEqual, 2)
	test.That(t, summary.MinQuality, test.ShouldEqual, MinQuality)
	test.That(t, summary.MedianQuality, test.ShouldAlmostEqual, math.Sqrt2/2, 1e-9)
	test.That(t, summary.MeanQuality, test.ShouldAlmostEqual, (0.2+math.Sqrt2+1)/5, 1e-9)
}
