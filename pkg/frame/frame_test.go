package frame

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func vecApproxEqual(a, b r3.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

// TestZeroValueIsIdentity verifies that an unset frame behaves as identity
func TestZeroValueIsIdentity(t *testing.T) {
	var f Frame

	if f.FrameToWorldRotation() != Identity {
		t.Errorf("Expected identity rotation, got %v", f.FrameToWorldRotation())
	}

	p := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := f.MapPointToWorld(p); !vecApproxEqual(got, p) {
		t.Errorf("Expected %v, got %v", p, got)
	}
}

// TestAccessors verifies the plain setters and getters
func TestAccessors(t *testing.T) {
	var f Frame
	origin := r3.Vec{X: 4, Y: 5, Z: 6}
	q := AxisAngle(math.Pi/3, r3.Vec{Z: 1})

	f.SetWorldOrigin(origin)
	f.SetFrameToWorldRotation(q)

	if f.WorldOrigin() != origin {
		t.Errorf("Expected origin %v, got %v", origin, f.WorldOrigin())
	}
	if f.FrameToWorldRotation() != q {
		t.Errorf("Expected rotation %v, got %v", q, f.FrameToWorldRotation())
	}
}

// TestComposeIdentity checks the composition identity law on both sides
func TestComposeIdentity(t *testing.T) {
	frames := []Frame{
		{},
		New(r3.Vec{X: 1, Y: 2, Z: 3}, Identity),
		New(r3.Vec{X: -7, Z: 0.5}, AxisAngle(0.3, r3.Vec{X: 1, Y: 1})),
		New(r3.Vec{Y: 10}, AxisAngle(math.Pi, r3.Vec{Z: 1})),
	}

	var identity Frame
	for i, f := range frames {
		if got := f.Compose(identity); !got.ApproxEqual(f, tol) {
			t.Errorf("Frame %d: f∘I = %v, expected %v", i, got, f)
		}
		if got := identity.Compose(f); !got.ApproxEqual(f, tol) {
			t.Errorf("Frame %d: I∘f = %v, expected %v", i, got, f)
		}
	}
}

// TestCompose verifies rotation and origin concatenation
func TestCompose(t *testing.T) {
	a := New(r3.Vec{X: 1}, AxisAngle(math.Pi/2, r3.Vec{Z: 1}))
	b := New(r3.Vec{X: 2}, AxisAngle(math.Pi/2, r3.Vec{X: 1}))

	c := a.Compose(b)

	// a rotates +X onto +Y, so b's origin lands at (1, 2, 0)
	expectedOrigin := r3.Vec{X: 1, Y: 2}
	if !vecApproxEqual(c.WorldOrigin(), expectedOrigin) {
		t.Errorf("Expected origin %v, got %v", expectedOrigin, c.WorldOrigin())
	}

	expectedRotation := quat.Mul(a.FrameToWorldRotation(), b.FrameToWorldRotation())
	if !RotationsApproxEqual(c.FrameToWorldRotation(), expectedRotation, tol) {
		t.Errorf("Expected rotation %v, got %v", expectedRotation, c.FrameToWorldRotation())
	}

	// Composing point maps equals mapping through c
	p := r3.Vec{X: 0.5, Y: -1, Z: 2}
	viaParts := a.MapPointToWorld(b.MapPointToWorld(p))
	if got := c.MapPointToWorld(p); !vecApproxEqual(got, viaParts) {
		t.Errorf("Expected %v, got %v", viaParts, got)
	}
}

// TestInverse verifies that a frame composed with its inverse is identity
func TestInverse(t *testing.T) {
	f := New(r3.Vec{X: 3, Y: -1, Z: 8}, AxisAngle(1.1, r3.Vec{X: 1, Y: -2, Z: 0.5}))

	if got := f.Compose(f.Inverse()); !got.ApproxEqual(Frame{}, tol) {
		t.Errorf("Expected identity, got %v", got)
	}

	p := r3.Vec{X: 1, Y: 1, Z: 1}
	if got := f.MapPointFromWorld(f.MapPointToWorld(p)); !vecApproxEqual(got, p) {
		t.Errorf("Expected round trip to %v, got %v", p, got)
	}
}

// TestRotated verifies rotation about a World axis through the origin
func TestRotated(t *testing.T) {
	f := New(r3.Vec{X: 5}, Identity)
	g := f.Rotated(math.Pi/2, r3.Vec{Z: 1})

	if g.WorldOrigin() != f.WorldOrigin() {
		t.Errorf("Expected origin unchanged, got %v", g.WorldOrigin())
	}
	if got := g.MapDirectionToWorld(r3.Vec{X: 1}); !vecApproxEqual(got, r3.Vec{Y: 1}) {
		t.Errorf("Expected +X to map to +Y, got %v", got)
	}
}

// TestSetFrameToWorldRotationFromAxes covers the axis basis solver
func TestSetFrameToWorldRotationFromAxes(t *testing.T) {
	tests := []struct {
		name           string
		xLocal, xWorld r3.Vec
		yLocal, yWorld r3.Vec
	}{
		{"identity", r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Y: 1}},
		{"quarter turn about z", r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Y: 1}, r3.Vec{X: -1}},
		{"axial LAI", r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Y: -1}},
		{"sagittal PSL", r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}},
		{"unnormalised", r3.Vec{X: 2}, r3.Vec{Z: 3}, r3.Vec{Y: 5}, r3.Vec{X: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Frame
			if err := f.SetFrameToWorldRotationFromAxes(tt.xLocal, tt.xWorld, tt.yLocal, tt.yWorld, true); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			q := f.FrameToWorldRotation()
			if !scalar.EqualWithinAbs(quat.Abs(q), 1, tol) {
				t.Errorf("Expected unit quaternion, got norm %f", quat.Abs(q))
			}
			if got := f.MapDirectionToWorld(r3.Unit(tt.xLocal)); !vecApproxEqual(got, r3.Unit(tt.xWorld)) {
				t.Errorf("Expected x axis to map to %v, got %v", r3.Unit(tt.xWorld), got)
			}
			if got := f.MapDirectionToWorld(r3.Unit(tt.yLocal)); !vecApproxEqual(got, r3.Unit(tt.yWorld)) {
				t.Errorf("Expected y axis to map to %v, got %v", r3.Unit(tt.yWorld), got)
			}
		})
	}
}

// TestSetFrameToWorldRotationFromAxesUnequalAngles checks the equal-angle guard
func TestSetFrameToWorldRotationFromAxesUnequalAngles(t *testing.T) {
	f := New(r3.Vec{X: 1, Y: 2, Z: 3}, AxisAngle(0.2, r3.Vec{Y: 1}))
	before := f

	// Local pair at 90 degrees, target pair at 45 degrees
	xLocal, yLocal := r3.Vec{X: 1}, r3.Vec{Y: 1}
	xWorld, yWorld := r3.Vec{X: 1}, r3.Unit(r3.Vec{X: 1, Y: 1})

	err := f.SetFrameToWorldRotationFromAxes(xLocal, xWorld, yLocal, yWorld, true)
	if !errors.Is(err, ErrInvalidBasis) {
		t.Fatalf("Expected ErrInvalidBasis, got %v", err)
	}
	if f != before {
		t.Errorf("Expected frame unchanged on error, got %v", f)
	}

	// Falling back to the unconstrained solve keeps x exact and y in plane
	if err := f.SetFrameToWorldRotationFromAxes(xLocal, xWorld, yLocal, yWorld, false); err != nil {
		t.Fatalf("Unexpected error without angle constraint: %v", err)
	}
	if got := f.MapDirectionToWorld(xLocal); !vecApproxEqual(got, xWorld) {
		t.Errorf("Expected x axis to map to %v, got %v", xWorld, got)
	}
	if got := f.MapDirectionToWorld(yLocal); !vecApproxEqual(got, r3.Vec{Y: 1}) {
		t.Errorf("Expected y axis to map to +Y, got %v", got)
	}
}

// TestSetFrameToWorldRotationFromAxesDegenerate checks zero and parallel axes
func TestSetFrameToWorldRotationFromAxesDegenerate(t *testing.T) {
	var f Frame

	if err := f.SetFrameToWorldRotationFromAxes(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Y: 1}, false); !errors.Is(err, ErrInvalidBasis) {
		t.Errorf("Expected ErrInvalidBasis for zero axis, got %v", err)
	}
	if err := f.SetFrameToWorldRotationFromAxes(r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{Y: 1}, false); !errors.Is(err, ErrInvalidBasis) {
		t.Errorf("Expected ErrInvalidBasis for parallel local axes, got %v", err)
	}
}

// TestMatrix verifies the homogeneous matrix layout
func TestMatrix(t *testing.T) {
	f := New(r3.Vec{X: 1, Y: 2, Z: 3}, AxisAngle(math.Pi/2, r3.Vec{Z: 1}))
	m := f.Matrix()

	expected := [4][4]float64{
		{0, -1, 0, 1},
		{1, 0, 0, 2},
		{0, 0, 1, 3},
		{0, 0, 0, 1},
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !scalar.EqualWithinAbs(m.At(i, j), expected[i][j], tol) {
				t.Errorf("Expected m[%d][%d] = %f, got %f", i, j, expected[i][j], m.At(i, j))
			}
		}
	}
}

// TestRotationsApproxEqualSign verifies q and -q are the same rotation
func TestRotationsApproxEqualSign(t *testing.T) {
	q := AxisAngle(0.7, r3.Vec{X: 1, Y: 2, Z: 3})
	if !RotationsApproxEqual(q, quat.Scale(-1, q), tol) {
		t.Error("Expected q and -q to compare equal")
	}
	if RotationsApproxEqual(q, Identity, tol) {
		t.Error("Expected q and identity to differ")
	}
}
