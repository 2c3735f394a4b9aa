package lottie

import (
	"fmt"
	"math"
	"sync"
)

// MorphPath implements spec §4.8's path morphing: normalizes both
// endpoints to a common vertex count by arc-length-parameterized
// resampling, direction-normalizes by signed area, rotates the vertex
// start index to minimize sum-of-distances between corresponding
// vertices, then linearly interpolates vertex-by-vertex and
// tangent-by-tangent at parameter t.
func MorphPath(a, b BezierPath, t float64) BezierPath {
	n := len(a.Vertices)
	if m := len(b.Vertices); m > n {
		n = m
	}
	if n == 0 {
		return BezierPath{}
	}
	na := normalize(a, n)
	nb := normalize(b, n)
	nb = rotateToMinimizeDistance(na, nb)

	out := BezierPath{
		Closed:      a.Closed,
		Vertices:    make([][2]float64, n),
		InTangents:  make([][2]float64, n),
		OutTangents: make([][2]float64, n),
	}
	for i := 0; i < n; i++ {
		out.Vertices[i] = lerp2(na.Vertices[i], nb.Vertices[i], t)
		out.InTangents[i] = lerp2(tangentAt(na.InTangents, i), tangentAt(nb.InTangents, i), t)
		out.OutTangents[i] = lerp2(tangentAt(na.OutTangents, i), tangentAt(nb.OutTangents, i), t)
	}
	return out
}

func tangentAt(tans [][2]float64, i int) [2]float64 {
	if i < len(tans) {
		return tans[i]
	}
	return [2]float64{}
}

func lerp2(a, b [2]float64, t float64) [2]float64 {
	return [2]float64{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

var normalizeCache sync.Map // structuralHash -> BezierPath

// normalize resamples path to exactly n vertices along its arc length,
// direction-normalized so all paths wind the same way, caching the result
// under a key built from the target count, closedness, and every vertex and
// tangent of path.
func normalize(path BezierPath, n int) BezierPath {
	key := structuralHash(path, n)
	if cached, ok := normalizeCache.Load(key); ok {
		return cached.(BezierPath)
	}
	resampled := resample(path, n)
	if signedArea(resampled.Vertices) < 0 {
		reverseInPlace(&resampled)
	}
	normalizeCache.Store(key, resampled)
	return resampled
}

func structuralHash(path BezierPath, n int) string {
	return fmt.Sprint(n, path.Closed, path.Vertices, path.InTangents, path.OutTangents)
}

func itoaHash(h int) string {
	const digits = "0123456789abcdef"
	if h < 0 {
		h = -h
	}
	buf := make([]byte, 0, 16)
	if h == 0 {
		return "0"
	}
	for h > 0 {
		buf = append(buf, digits[h&0xf])
		h >>= 4
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// resample inserts arc-length-parameterized interpolated vertices so path
// has exactly n vertices.
func resample(path BezierPath, n int) BezierPath {
	src := path.Vertices
	if len(src) == 0 {
		return BezierPath{Closed: path.Closed, Vertices: make([][2]float64, n)}
	}
	if len(src) == n {
		return path
	}
	total := polylineLength(src, path.Closed)
	out := make([][2]float64, n)
	if total == 0 {
		for i := range out {
			out[i] = src[0]
		}
		return BezierPath{Closed: path.Closed, Vertices: out}
	}
	step := total / float64(n)
	segCount := len(src)
	if !path.Closed {
		segCount--
	}
	for i := 0; i < n; i++ {
		target := step * float64(i)
		out[i] = pointAtLength(src, path.Closed, segCount, target)
	}
	return BezierPath{Closed: path.Closed, Vertices: out}
}

func polylineLength(pts [][2]float64, closed bool) float64 {
	total := 0.0
	n := len(pts)
	limit := n - 1
	if closed {
		limit = n
	}
	for i := 0; i < limit; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		total += math.Hypot(b[0]-a[0], b[1]-a[1])
	}
	return total
}

func pointAtLength(pts [][2]float64, closed bool, segCount int, target float64) [2]float64 {
	n := len(pts)
	acc := 0.0
	for i := 0; i < segCount; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		segLen := math.Hypot(b[0]-a[0], b[1]-a[1])
		if acc+segLen >= target || i == segCount-1 {
			frac := 0.0
			if segLen > 0 {
				frac = (target - acc) / segLen
			}
			return lerp2(a, b, frac)
		}
		acc += segLen
	}
	return pts[0]
}

func signedArea(pts [][2]float64) float64 {
	area := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}

func reverseInPlace(p *BezierPath) {
	for i, j := 0, len(p.Vertices)-1; i < j; i, j = i+1, j-1 {
		p.Vertices[i], p.Vertices[j] = p.Vertices[j], p.Vertices[i]
	}
}

// rotateToMinimizeDistance cyclically shifts b's vertex start index to the
// offset minimizing sum-of-distances to a's corresponding vertices.
func rotateToMinimizeDistance(a, b BezierPath) BezierPath {
	n := len(a.Vertices)
	if n == 0 || n != len(b.Vertices) {
		return b
	}
	bestOffset := 0
	bestDist := math.Inf(1)
	for offset := 0; offset < n; offset++ {
		dist := 0.0
		for i := 0; i < n; i++ {
			bv := b.Vertices[(i+offset)%n]
			av := a.Vertices[i]
			dist += math.Hypot(bv[0]-av[0], bv[1]-av[1])
		}
		if dist < bestDist {
			bestDist = dist
			bestOffset = offset
		}
	}
	if bestOffset == 0 {
		return b
	}
	rotated := BezierPath{Closed: b.Closed, Vertices: make([][2]float64, n)}
	if len(b.InTangents) == n {
		rotated.InTangents = make([][2]float64, n)
	}
	if len(b.OutTangents) == n {
		rotated.OutTangents = make([][2]float64, n)
	}
	for i := 0; i < n; i++ {
		src := (i + bestOffset) % n
		rotated.Vertices[i] = b.Vertices[src]
		if rotated.InTangents != nil {
			rotated.InTangents[i] = b.InTangents[src]
		}
		if rotated.OutTangents != nil {
			rotated.OutTangents[i] = b.OutTangents[src]
		}
	}
	return rotated
}
