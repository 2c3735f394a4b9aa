package lottie

import (
	"math"
	"testing"
)

func TestMorphPathEndpointsMatchSourcesScenarioS4(t *testing.T) {
	a := BezierPath{Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	b := BezierPath{Vertices: [][2]float64{{0, 0}, {20, 0}, {20, 20}, {0, 20}}}

	at0 := MorphPath(a, b, 0)
	for i, v := range at0.Vertices {
		if math.Abs(v[0]-a.Vertices[i][0]) > 1e-6 || math.Abs(v[1]-a.Vertices[i][1]) > 1e-6 {
			t.Fatalf("t=0 vertex %d = %v, want %v", i, v, a.Vertices[i])
		}
	}

	at1 := MorphPath(a, b, 1)
	for i, v := range at1.Vertices {
		if math.Abs(v[0]-b.Vertices[i][0]) > 1e-6 || math.Abs(v[1]-b.Vertices[i][1]) > 1e-6 {
			t.Fatalf("t=1 vertex %d = %v, want %v", i, v, b.Vertices[i])
		}
	}
}

func TestMorphPathMidpointInterpolatesLinearly(t *testing.T) {
	a := BezierPath{Vertices: [][2]float64{{0, 0}, {10, 0}}}
	b := BezierPath{Vertices: [][2]float64{{0, 0}, {20, 0}}}
	mid := MorphPath(a, b, 0.5)
	if math.Abs(mid.Vertices[1][0]-15) > 1e-6 {
		t.Fatalf("midpoint x = %v, want 15", mid.Vertices[1][0])
	}
}

func TestMorphPathNormalizesDifferingVertexCounts(t *testing.T) {
	a := BezierPath{Closed: true, Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	b := BezierPath{Closed: true, Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}}}
	out := MorphPath(a, b, 0.5)
	if len(out.Vertices) != 4 {
		t.Fatalf("expected normalized vertex count 4, got %d", len(out.Vertices))
	}
}

func TestSignedAreaDetectsWindingDirection(t *testing.T) {
	ccw := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	cw := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if signedArea(ccw) <= 0 {
		t.Fatal("expected positive signed area for ccw winding")
	}
	if signedArea(cw) >= 0 {
		t.Fatal("expected negative signed area for cw winding")
	}
}
