// Package transform holds the rigid transform helpers grasp generation is built on. Poses are
// rdk spatialmath poses; rotations supplied by configuration are checked for rigidity before
// they become poses.
package transform

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultRigidityTolerance is the tolerance used when checking that a rotation is orthonormal.
const DefaultRigidityTolerance = 1e-6

// ErrNotRigid is returned when a rotation is not a proper rotation.
var ErrNotRigid = errors.New("transform is not a rigid body transform")

// RotationAbout returns a pure rotation of theta radians about axis. The axis does not need
// to be normalized.
func RotationAbout(axis r3.Vector, theta float64) spatialmath.Pose {
	k := axis.Normalize()
	return spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: theta, RX: k.X, RY: k.Y, RZ: k.Z})
}

// Compose multiplies the given poses left to right, so the last one is applied first.
func Compose(first spatialmath.Pose, rest ...spatialmath.Pose) spatialmath.Pose {
	out := first
	for _, next := range rest {
		out = spatialmath.Compose(out, next)
	}
	return out
}

// Inverse returns the inverse of a pose.
func Inverse(p spatialmath.Pose) spatialmath.Pose {
	return spatialmath.PoseInverse(p)
}

// WithTranslation returns p moved to t, keeping its orientation.
func WithTranslation(p spatialmath.Pose, t r3.Vector) spatialmath.Pose {
	return spatialmath.NewPose(t, p.Orientation())
}

// Apply transforms a point by p.
func Apply(p spatialmath.Pose, v r3.Vector) r3.Vector {
	return spatialmath.Compose(p, spatialmath.NewPoseFromPoint(v)).Point()
}

// Rotate applies only the orientation of p to a vector.
func Rotate(p spatialmath.Pose, v r3.Vector) r3.Vector {
	return Apply(spatialmath.NewPoseFromOrientation(p.Orientation()), v)
}

// AlmostEqual reports whether the points of a and b are within eps of each other and their
// orientation quaternions, up to sign, differ by at most eps.
func AlmostEqual(a, b spatialmath.Pose, eps float64) bool {
	if a.Point().Sub(b.Point()).Norm() > eps {
		return false
	}
	qa, qb := a.Orientation().Quaternion(), b.Orientation().Quaternion()
	return math.Min(quat.Abs(quat.Sub(qa, qb)), quat.Abs(quat.Add(qa, qb))) <= eps
}

// CheckPose returns an error wrapping ErrNotRigid if p has a non-finite entry or its
// orientation is not a unit quaternion.
func CheckPose(p spatialmath.Pose, tol float64) error {
	pt := p.Point()
	q := p.Orientation().Quaternion()
	for _, v := range []float64{pt.X, pt.Y, pt.Z, q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrNotRigid, "non-finite entry")
		}
	}
	if n := quat.Abs(q); math.Abs(n-1) > tol {
		return errors.Wrapf(ErrNotRigid, "orientation quaternion norm is %.6f", n)
	}
	return nil
}

// CheckRotation returns an error wrapping ErrNotRigid unless the row-major 3x3 rotation is
// finite, orthonormal and not a reflection.
func CheckRotation(rotation []float64, tol float64) error {
	if len(rotation) != 9 {
		return errors.Wrapf(ErrNotRigid, "rotation needs 9 entries, got %d", len(rotation))
	}
	for _, v := range rotation {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrNotRigid, "non-finite entry")
		}
	}
	r := mat.NewDense(3, 3, append([]float64(nil), rotation...))
	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	if !mat.EqualApprox(&rtr, mat.NewDiagDense(3, []float64{1, 1, 1}), tol) {
		return errors.Wrap(ErrNotRigid, "rotation is not orthonormal")
	}
	if det := mat.Det(r); math.Abs(det-1) > tol {
		return errors.Wrapf(ErrNotRigid, "rotation determinant is %.6f", det)
	}
	return nil
}

// FromRowMajor builds a pose from a row-major rotation matrix and a translation, rejecting
// rotations that fail CheckRotation.
func FromRowMajor(rotation []float64, translation r3.Vector, tol float64) (spatialmath.Pose, error) {
	if err := CheckRotation(rotation, tol); err != nil {
		return nil, err
	}
	// spatialmath keeps rotation matrices column-major.
	m := rotation
	rm, err := spatialmath.NewRotationMatrix([]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	})
	if err != nil {
		return nil, err
	}
	return spatialmath.NewPose(translation, rm), nil
}

// NewUnitQuaternion returns the orientation w + xi + yj + zk, or an error if its norm differs
// from one by more than tol.
func NewUnitQuaternion(w, x, y, z, tol float64) (spatialmath.Orientation, error) {
	n := quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
	if norm := quat.Abs(n); math.IsNaN(norm) || math.Abs(norm-1) > tol {
		return nil, errors.Wrapf(ErrNotRigid, "quaternion norm is %.6f, expected 1", norm)
	}
	q := spatialmath.Quaternion(n)
	return &q, nil
}
