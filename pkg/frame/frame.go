// Package frame provides the rigid coordinate frame used throughout histoalign.
// A Frame maps a local coordinate space (crosshairs, slide stack, camera start)
// into World space with a rotation followed by a translation. There is no scale.
package frame

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidBasis is returned when a requested axis basis cannot be reached by
// a pure rotation.
var ErrInvalidBasis = errors.New("invalid basis")

// AngleTolerance is the largest difference, in radians, between the local and
// target axis-pair angles accepted when equal angles are required.
const AngleTolerance = 1e-4

// degenerateNorm is the smallest cross product norm treated as two
// non-parallel axes.
const degenerateNorm = 1e-9

// Identity is the identity rotation.
var Identity = quat.Number{Real: 1}

// Frame is a rigid transform from a local frame to World space.
//
// The zero value is the identity frame.
type Frame struct {
	// origin is the position of the frame origin in World space
	origin r3.Vec

	// rotation is world_O_frame; the zero quaternion stands for identity
	rotation quat.Number
}

// New returns a frame with the given World origin and frame-to-World rotation.
func New(origin r3.Vec, rotation quat.Number) Frame {
	return Frame{origin: origin, rotation: rotation}
}

// WorldOrigin returns the frame origin in World space.
func (f Frame) WorldOrigin() r3.Vec {
	return f.origin
}

// SetWorldOrigin sets the frame origin in World space.
func (f *Frame) SetWorldOrigin(origin r3.Vec) {
	f.origin = origin
}

// FrameToWorldRotation returns the rotation world_O_frame.
func (f Frame) FrameToWorldRotation() quat.Number {
	if f.rotation == (quat.Number{}) {
		return Identity
	}
	return f.rotation
}

// SetFrameToWorldRotation sets world_O_frame. The caller supplies a unit
// quaternion; it is stored as given.
func (f *Frame) SetFrameToWorldRotation(rotation quat.Number) {
	f.rotation = rotation
}

// SetFrameToWorldRotationFromAxes sets the rotation that maps xLocal onto the
// direction xWorld and the plane of (xLocal, yLocal) onto the plane of
// (xWorld, yWorld), with yLocal landing on the same side as yWorld.
//
// With requireEqualAngles the angle between xLocal and yLocal must match the
// angle between xWorld and yWorld, otherwise ErrInvalidBasis is returned.
// Zero-length or parallel axis pairs also return ErrInvalidBasis. The frame is
// not modified on error.
func (f *Frame) SetFrameToWorldRotationFromAxes(xLocal, xWorld, yLocal, yWorld r3.Vec, requireEqualAngles bool) error {
	local, err := triad(xLocal, yLocal)
	if err != nil {
		return fmt.Errorf("local axes: %w", err)
	}
	target, err := triad(xWorld, yWorld)
	if err != nil {
		return fmt.Errorf("target axes: %w", err)
	}

	if requireEqualAngles {
		localAngle := angleBetween(xLocal, yLocal)
		targetAngle := angleBetween(xWorld, yWorld)
		if !scalar.EqualWithinAbs(localAngle, targetAngle, AngleTolerance) {
			return fmt.Errorf("%w: local axes at %.4f rad, target axes at %.4f rad",
				ErrInvalidBasis, localAngle, targetAngle)
		}
	}

	// world_R_frame = target * local^T
	var r mat.Dense
	r.Mul(target, local.T())
	f.rotation = matrixToQuat(&r)
	return nil
}

// Compose returns f∘g: the frame g expressed in the local space of f, mapped
// to World. The rotation is f.rotation*g.rotation.
func (f Frame) Compose(g Frame) Frame {
	return Frame{
		origin:   r3.Add(f.origin, rotate(f.FrameToWorldRotation(), g.origin)),
		rotation: quat.Mul(f.FrameToWorldRotation(), g.FrameToWorldRotation()),
	}
}

// Inverse returns the frame mapping World space into this frame's local space.
func (f Frame) Inverse() Frame {
	inv := quat.Conj(f.FrameToWorldRotation())
	return Frame{
		origin:   r3.Scale(-1, rotate(inv, f.origin)),
		rotation: inv,
	}
}

// MapPointToWorld maps a point in local coordinates to World space.
func (f Frame) MapPointToWorld(p r3.Vec) r3.Vec {
	return r3.Add(f.origin, rotate(f.FrameToWorldRotation(), p))
}

// MapDirectionToWorld rotates a local direction into World space.
func (f Frame) MapDirectionToWorld(d r3.Vec) r3.Vec {
	return rotate(f.FrameToWorldRotation(), d)
}

// MapPointFromWorld maps a World point into local coordinates.
func (f Frame) MapPointFromWorld(p r3.Vec) r3.Vec {
	return rotate(quat.Conj(f.FrameToWorldRotation()), r3.Sub(p, f.origin))
}

// Rotated returns a copy of f rotated by angle radians about a World axis
// passing through the frame origin.
func (f Frame) Rotated(angle float64, axisWorld r3.Vec) Frame {
	f.rotation = quat.Mul(AxisAngle(angle, axisWorld), f.FrameToWorldRotation())
	return f
}

// ApproxEqual reports whether two frames have origins and rotations within tol.
// Rotations q and -q are the same rotation and compare equal.
func (f Frame) ApproxEqual(g Frame, tol float64) bool {
	if r3.Norm(r3.Sub(f.origin, g.origin)) > tol {
		return false
	}
	return RotationsApproxEqual(f.FrameToWorldRotation(), g.FrameToWorldRotation(), tol)
}

// Matrix returns the 4x4 homogeneous matrix world_O_frame in row-major order.
func (f Frame) Matrix() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	q := f.FrameToWorldRotation()
	for j, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		c := rotate(q, axis)
		m.Set(0, j, c.X)
		m.Set(1, j, c.Y)
		m.Set(2, j, c.Z)
	}
	m.Set(0, 3, f.origin.X)
	m.Set(1, 3, f.origin.Y)
	m.Set(2, 3, f.origin.Z)
	m.Set(3, 3, 1)
	return m
}

// String implements fmt.Stringer.
func (f Frame) String() string {
	q := f.FrameToWorldRotation()
	return fmt.Sprintf("origin=(%.3f, %.3f, %.3f) rotation=(%.4f, %.4f, %.4f, %.4f)",
		f.origin.X, f.origin.Y, f.origin.Z, q.Real, q.Imag, q.Jmag, q.Kmag)
}

// AxisAngle returns the unit quaternion rotating by angle radians about axis.
// A zero axis yields the identity.
func AxisAngle(angle float64, axis r3.Vec) quat.Number {
	n := r3.Norm(axis)
	if n == 0 {
		return Identity
	}
	s := math.Sin(angle/2) / n
	return quat.Number{Real: math.Cos(angle / 2), Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}
}

// RotationsApproxEqual reports whether q and p describe the same rotation
// within tol, treating q and -q as equal.
func RotationsApproxEqual(q, p quat.Number, tol float64) bool {
	same := quat.Abs(quat.Sub(q, p)) <= tol
	flipped := quat.Abs(quat.Add(q, p)) <= tol
	return same || flipped
}

// Rotate applies the unit quaternion q to the vector v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	return rotate(q, v)
}

func rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

func angleBetween(a, b r3.Vec) float64 {
	c := r3.Cos(a, b)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// triad returns the orthonormal basis (columns x, y, z) with x along a and z
// normal to the plane of a and b.
func triad(a, b r3.Vec) (*mat.Dense, error) {
	if r3.Norm(a) < degenerateNorm || r3.Norm(b) < degenerateNorm {
		return nil, fmt.Errorf("%w: zero-length axis", ErrInvalidBasis)
	}
	x := r3.Unit(a)
	n := r3.Cross(x, r3.Unit(b))
	if r3.Norm(n) < degenerateNorm {
		return nil, fmt.Errorf("%w: parallel axes", ErrInvalidBasis)
	}
	z := r3.Unit(n)
	y := r3.Cross(z, x)

	return mat.NewDense(3, 3, []float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}), nil
}

// matrixToQuat converts a proper rotation matrix to a unit quaternion.
func matrixToQuat(m mat.Matrix) quat.Number {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	var q quat.Number
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = quat.Number{Real: s / 4, Imag: (m21 - m12) / s, Jmag: (m02 - m20) / s, Kmag: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = quat.Number{Real: (m21 - m12) / s, Imag: s / 4, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = quat.Number{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: s / 4, Kmag: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = quat.Number{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: s / 4}
	}
	return quat.Scale(1/quat.Abs(q), q)
}
