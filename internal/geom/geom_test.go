package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Norm(); !approx(got, tt.want) {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := x.Cross(y)
	if z != (Vec3{Z: 1}) {
		t.Errorf("X × Y = %v, want +Z", z)
	}
	if got := y.Cross(x); got != (Vec3{Z: -1}) {
		t.Errorf("Y × X = %v, want -Z", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{2*math.Pi + 0.5, 0.5},
		{-0.5, 2*math.Pi - 0.5},
	}

	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !approx(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func testCamera() Camera {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = Vec3{Z: 100}
	cam.Target = Vec3{}
	return cam
}

func TestCameraBasis(t *testing.T) {
	forward, right, up := testCamera().Basis()

	if forward != (Vec3{Z: -1}) {
		t.Errorf("forward = %v, want -Z", forward)
	}
	if !approx(right.X, 1) || !approx(right.Y, 0) || !approx(right.Z, 0) {
		t.Errorf("right = %v, want +X", right)
	}
	if !approx(up.X, 0) || !approx(up.Y, 1) || !approx(up.Z, 0) {
		t.Errorf("up = %v, want +Y", up)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	ndc, depth, ok := testCamera().Project(Vec3{})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if !approx(ndc.X, 0) || !approx(ndc.Y, 0) {
		t.Errorf("origin projects to %v, want (0, 0)", ndc)
	}
	if !approx(depth, 100) {
		t.Errorf("depth = %v, want 100", depth)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	if _, _, ok := testCamera().Project(Vec3{Z: 200}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraProjectEdge(t *testing.T) {
	cam := testCamera()
	half := math.Tan(DegToRad(cam.FovDeg)/2) * 100

	ndc, _, ok := cam.Project(Vec3{Y: half})
	if !ok {
		t.Fatal("expected point to project")
	}
	if !approx(ndc.Y, 1) {
		t.Errorf("top edge projects to y=%v, want 1", ndc.Y)
	}

	cam.Aspect = 2
	ndc, _, _ = cam.Project(Vec3{X: half})
	if !approx(ndc.X, 0.5) {
		t.Errorf("with aspect 2, x=%v, want 0.5", ndc.X)
	}
}

func TestRayThroughRoundTrip(t *testing.T) {
	cam := testCamera()
	cam.Aspect = 1.6
	target := Vec3{X: 13, Y: -4, Z: 2}

	ndc, _, ok := cam.Project(target)
	if !ok {
		t.Fatal("expected target to project")
	}

	ray := cam.RayThrough(ndc)
	d := target.Sub(ray.Origin).Dot(ray.Dir)
	closest := ray.At(d)
	if closest.Sub(target).Norm() > 1e-6 {
		t.Errorf("ray through projected point misses it by %v", closest.Sub(target).Norm())
	}
}

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Origin: Vec3{Z: 100}, Dir: Vec3{Z: -1}}

	tests := []struct {
		name   string
		center Vec3
		radius float64
		wantOK bool
		wantT  float64
	}{
		{"hit at origin", Vec3{}, 4, true, 96},
		{"miss to the side", Vec3{X: 13}, 0.7, false, 0},
		{"grazing", Vec3{X: 1}, 1, true, 100},
		{"behind", Vec3{Z: 200}, 1, false, 0},
		{"inside", Vec3{Z: 100}, 5, true, 5},
		{"zero radius", Vec3{}, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ray.IntersectSphere(tt.center, tt.radius)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !approx(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}
