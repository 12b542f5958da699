package core

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0.5, Z: 2}

	if got := a.Add(b); got != (Vec3{X: 0, Y: 2.5, Z: 5}) {
		t.Fatalf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{X: 2, Y: 1.5, Z: 1}) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Fatalf("Scale = %+v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Fatalf("Dot = %v, want 6", got)
	}
}

func TestVec3NormAndDistance(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if got := v.Norm(); got != 5 {
		t.Fatalf("Norm = %v, want 5", got)
	}
	if got := v.DistanceTo(Vec3{}); got != 5 {
		t.Fatalf("DistanceTo origin = %v, want 5", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{X: 0, Y: -2, Z: 1}
	b := Vec3{X: 10, Y: 2, Z: 3}
	if got := a.Lerp(b, 0); got != a {
		t.Fatalf("Lerp(0) = %+v, want start", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Fatalf("Lerp(1) = %+v, want end", got)
	}
	mid := a.Lerp(b, 0.5)
	if !scalar.EqualWithinAbs(mid.X, 5, 1e-12) || !scalar.EqualWithinAbs(mid.Y, 0, 1e-12) {
		t.Fatalf("Lerp(0.5) = %+v", mid)
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	p0 := Vec3{X: 1, Y: 1, Z: 0}
	c1 := Vec3{X: 3, Y: 5, Z: 1}
	c2 := Vec3{X: 6, Y: 5, Z: 1}
	p3 := Vec3{X: 8, Y: 1, Z: 0}

	if got := cubicBezier(p0, c1, c2, p3, 0); got != p0 {
		t.Fatalf("bezier(0) = %+v, want %+v", got, p0)
	}
	if got := cubicBezier(p0, c1, c2, p3, 1); got != p3 {
		t.Fatalf("bezier(1) = %+v, want %+v", got, p3)
	}
	// Midpoint of a symmetric control polygon stays on the symmetry axis.
	mid := cubicBezier(p0, c1, c2, p3, 0.5)
	if !scalar.EqualWithinAbs(mid.X, 4.5, 1e-12) {
		t.Fatalf("bezier(0.5).X = %v, want 4.5", mid.X)
	}
	if mid.Y <= p0.Y {
		t.Fatalf("bezier(0.5).Y = %v, want pulled toward control points above %v", mid.Y, p0.Y)
	}
}
