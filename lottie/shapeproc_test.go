package lottie

import (
	"math"
	"testing"
)

func square(cx, cy, half float64) BezierPath {
	return BezierPath{
		Closed: true,
		Vertices: [][2]float64{
			{cx - half, cy - half}, {cx + half, cy - half},
			{cx + half, cy + half}, {cx - half, cy + half},
		},
	}
}

func TestRoundCornersPullsVerticesInward(t *testing.T) {
	p := square(0, 0, 10)
	out := roundCorners(p, 2)
	if len(out.Vertices) != len(p.Vertices)*2 {
		t.Fatalf("expected two vertices per corner, got %d", len(out.Vertices))
	}
	for _, v := range out.Vertices {
		if math.Abs(v[0]) > 10 || math.Abs(v[1]) > 10 {
			t.Fatalf("rounded vertex %v should stay within the original square", v)
		}
	}
}

func TestPuckerBloatScalesAwayFromCentroid(t *testing.T) {
	p := square(0, 0, 10)
	bloated := puckerBloat(p, 50)
	for i, v := range bloated.Vertices {
		orig := p.Vertices[i]
		if math.Hypot(v[0], v[1]) <= math.Hypot(orig[0], orig[1]) {
			t.Fatalf("positive pucker/bloat amount should move vertices outward, got %v from %v", v, orig)
		}
	}
	puckered := puckerBloat(p, -50)
	for i, v := range puckered.Vertices {
		orig := p.Vertices[i]
		if math.Hypot(v[0], v[1]) >= math.Hypot(orig[0], orig[1]) {
			t.Fatalf("negative pucker/bloat amount should move vertices inward, got %v from %v", v, orig)
		}
	}
}

func TestTwistPathRotatesOuterVerticesMoreThanCenter(t *testing.T) {
	p := square(0, 0, 10)
	out := twistPath(p, 90)
	// A 90 degree twist should move every vertex off its original position.
	for i, v := range out.Vertices {
		if v == p.Vertices[i] {
			t.Fatalf("expected twist to move vertex %d", i)
		}
	}
}

func TestZigZagInjectsRidgeVertices(t *testing.T) {
	p := square(0, 0, 10)
	out := zigZagPath(p, 2, 3)
	if len(out.Vertices) <= len(p.Vertices) {
		t.Fatalf("expected zig-zag to add ridge vertices, got %d from %d", len(out.Vertices), len(p.Vertices))
	}
}

func TestOffsetPathMovesVerticesAlongNormals(t *testing.T) {
	p := square(0, 0, 10)
	out := offsetPath(p, 3)
	for i, v := range out.Vertices {
		orig := p.Vertices[i]
		if v == orig {
			t.Fatalf("expected offset-path to move vertex %d", i)
		}
	}
}

func TestWigglePathIsDeterministicAcrossCalls(t *testing.T) {
	p := square(0, 0, 10)
	a := wigglePath(p, 1.5, 2, 7)
	b := wigglePath(p, 1.5, 2, 7)
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("wigglePath should be deterministic for the same frame, got %v and %v", a.Vertices[i], b.Vertices[i])
		}
	}
}

func TestMergePathsUnionCoversBothShapes(t *testing.T) {
	a := square(-5, 0, 5)
	b := square(5, 0, 5)
	out := mergePaths([]BezierPath{a, b}, 1)
	if len(out) == 0 {
		t.Fatal("expected union to produce at least one contour")
	}
	minX, _, maxX, _ := pathsBounds(out)
	if maxX-minX < 15 {
		t.Fatalf("expected union's bounds to span both squares, got width %v", maxX-minX)
	}
}

func TestMergePathsIntersectIsSmallerThanEitherInput(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)
	out := mergePaths([]BezierPath{a, b}, 4)
	if len(out) == 0 {
		t.Fatal("expected intersect to produce a contour for overlapping squares")
	}
	minX, _, maxX, _ := pathsBounds(out)
	if maxX-minX >= 20 {
		t.Fatalf("expected intersection narrower than either input square, got width %v", maxX-minX)
	}
}

func TestMergePathsLeavesSingletonUntouched(t *testing.T) {
	a := square(0, 0, 10)
	out := mergePaths([]BezierPath{a}, 1)
	if len(out) != 1 || out[0].Vertices[0] != a.Vertices[0] {
		t.Fatal("expected a single pending path to pass through mergePaths unchanged")
	}
}

func TestTrimPathsFullRangeIsUnchanged(t *testing.T) {
	a := square(0, 0, 10)
	out := trimPaths([]BezierPath{a}, 0, 1)
	if len(out) != 1 || len(out[0].Vertices) != len(a.Vertices) {
		t.Fatal("expected [0,1] trim range to pass the path through unchanged")
	}
}

func TestTrimPathsHalfRangeShortensPerimeter(t *testing.T) {
	a := square(0, 0, 10)
	out := trimPathsOffset([]BezierPath{a}, 0, 0.5, 0)
	if len(out) != 1 {
		t.Fatalf("expected one trimmed path, got %d", len(out))
	}
	full := flattenClosedPath(a)
	trimmed := out[0].Vertices
	if perimeter(trimmed) >= perimeter(full) {
		t.Fatalf("expected trimmed perimeter shorter than full perimeter")
	}
}

func TestTrimPathsWrapsAroundOffset(t *testing.T) {
	a := square(0, 0, 10)
	// A quarter-length window rotated by an offset that pushes it past 1.0
	// should still produce a non-degenerate path (the tail+head join case).
	out := trimPathsOffset([]BezierPath{a}, 0, 0.25, 0.9)
	if len(out) != 1 || len(out[0].Vertices) < 2 {
		t.Fatal("expected a wrapped trim window to still produce a usable path")
	}
}

func perimeter(pts [][2]float64) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i][0]-pts[i-1][0], pts[i][1]-pts[i-1][1])
	}
	return total
}
