package lottie

import (
	"math"
	"sort"

	"github.com/kinetic-motion/director/anim"
)

// ProcessShapes walks a shape list in declaration order, maintaining a
// list of pending (unmaterialized) geometries, and returns every path
// materialized by a fill/stroke/gradient paint it encounters, per spec
// §4.8's shape processor. Group transforms, trim paths, merge paths, and
// the six shape modifiers (round corners, zig-zag, pucker/bloat, twist,
// offset path, wiggle path) each rewrite the pending list in place as it's
// walked, so every fill/stroke downstream of a modifier sees the modified
// geometry.
func ProcessShapes(shapes []Shape, frame float64) []MaterializedPath {
	var pending []BezierPath
	var materialized []MaterializedPath
	trimStart, trimEnd, trimOffset := 0.0, 1.0, 0.0

	for _, s := range shapes {
		switch s.Type {
		case ShapeTypePath:
			pending = append(pending, resolvePathAt(s.Vertices, frame))
		case ShapeTypeRect:
			pending = append(pending, rectToPath(s, frame))
		case ShapeTypeEllipse:
			pending = append(pending, ellipseToPath(s, frame))
		case ShapeTypePolystar:
			pending = append(pending, polystarToPath(s, frame))
		case ShapeTypeTrim:
			trimStart = Resolve(&s.TrimStart, frame, ScalarConverter, 0) / 100
			trimEnd = Resolve(&s.TrimEnd, frame, ScalarConverter, 100) / 100
			trimOffset = Resolve(&s.TrimOffset, frame, ScalarConverter, 0) / 100
		case ShapeTypeMergePaths:
			pending = mergePaths(pending, s.MergeMode)
		case ShapeTypeRoundCorners, ShapeTypeZigZag, ShapeTypePuckerBloat,
			ShapeTypeTwist, ShapeTypeOffsetPath, ShapeTypeWigglePath:
			pending = applyShapeModifier(pending, s, frame)
		case ShapeTypeFill:
			paint := &Paint{}
			col := Resolve(&s.Color, frame, ColorConverter, anim.Color{})
			paint.R, paint.G, paint.B = col.R, col.G, col.B
			paint.A = Resolve(&s.Opacity, frame, ScalarConverter, 100) / 100
			for _, p := range trimPathsOffset(pending, trimStart, trimEnd, trimOffset) {
				materialized = append(materialized, MaterializedPath{Path: p, Fill: paint})
			}
		case ShapeTypeStroke:
			paint := &Paint{}
			col := Resolve(&s.Color, frame, ColorConverter, anim.Color{})
			paint.R, paint.G, paint.B = col.R, col.G, col.B
			paint.A = Resolve(&s.Opacity, frame, ScalarConverter, 100) / 100
			paint.Width = Resolve(&s.Width, frame, ScalarConverter, 1)
			for _, p := range trimPathsOffset(pending, trimStart, trimEnd, trimOffset) {
				materialized = append(materialized, MaterializedPath{Path: p, Stroke: paint})
			}
		case ShapeTypeGradientFill, ShapeTypeGradientStroke:
			// Gradient paints materialize through the same trimPaths pass;
			// only the dominant stop is carried since the render package's
			// Drawable contract paints flat colors per path segment.
			paint := dominantGradientStop(s, frame)
			for _, p := range trimPathsOffset(pending, trimStart, trimEnd, trimOffset) {
				if s.Type == ShapeTypeGradientFill {
					materialized = append(materialized, MaterializedPath{Path: p, Fill: paint})
				} else {
					paint.Width = Resolve(&s.Width, frame, ScalarConverter, 1)
					materialized = append(materialized, MaterializedPath{Path: p, Stroke: paint})
				}
			}
		case ShapeTypeGroup:
			sub := ProcessShapes(s.Items, frame)
			if s.Transform != nil {
				applyGroupTransform(sub, s.Transform, frame)
			}
			materialized = append(materialized, sub...)
		case ShapeTypeRepeater:
			copies := int(Resolve(&s.Copies, frame, ScalarConverter, 1))
			startOp := Resolve(&s.StartOp, frame, ScalarConverter, 100)
			endOp := Resolve(&s.EndOp, frame, ScalarConverter, 100)
			materialized = append(materialized, repeatPaths(materialized, copies, startOp, endOp)...)
		}
	}
	return materialized
}

func resolvePathAt(ab *AnimatedBezier, frame float64) BezierPath {
	if ab == nil {
		return BezierPath{}
	}
	if ab.Animated == 0 {
		return ab.Static
	}
	if len(ab.Keyframes) == 0 {
		return BezierPath{}
	}
	if frame < ab.Keyframes[0].Time {
		return ab.Keyframes[0].Start
	}
	last := ab.Keyframes[len(ab.Keyframes)-1]
	if frame >= last.Time {
		return last.End
	}
	for i := 0; i < len(ab.Keyframes)-1; i++ {
		kf := ab.Keyframes[i]
		next := ab.Keyframes[i+1]
		if frame >= kf.Time && frame < next.Time {
			if kf.Hold {
				return kf.Start
			}
			t := (frame - kf.Time) / (next.Time - kf.Time)
			return MorphPath(kf.Start, kf.End, t)
		}
	}
	return last.Start
}

func rectToPath(s Shape, frame float64) BezierPath {
	pos := Resolve(&s.Position, frame, Vec2Converter, anim.Vec2{})
	size := Resolve(&s.Size, frame, Vec2Converter, anim.Vec2{})
	hw, hh := size.X/2, size.Y/2
	return BezierPath{
		Closed: true,
		Vertices: [][2]float64{
			{pos.X - hw, pos.Y - hh}, {pos.X + hw, pos.Y - hh},
			{pos.X + hw, pos.Y + hh}, {pos.X - hw, pos.Y + hh},
		},
	}
}

func ellipseToPath(s Shape, frame float64) BezierPath {
	pos := Resolve(&s.Position, frame, Vec2Converter, anim.Vec2{})
	size := Resolve(&s.Size, frame, Vec2Converter, anim.Vec2{})
	const k = 0.5522847498 // cubic-bezier circle approximation constant
	rx, ry := size.X/2, size.Y/2
	return BezierPath{
		Closed:      true,
		Vertices:    [][2]float64{{pos.X, pos.Y - ry}, {pos.X + rx, pos.Y}, {pos.X, pos.Y + ry}, {pos.X - rx, pos.Y}},
		OutTangents: [][2]float64{{rx * k, 0}, {0, ry * k}, {-rx * k, 0}, {0, -ry * k}},
		InTangents:  [][2]float64{{-rx * k, 0}, {0, -ry * k}, {rx * k, 0}, {0, ry * k}},
	}
}

func polystarToPath(s Shape, frame float64) BezierPath {
	pos := Resolve(&s.Position, frame, Vec2Converter, anim.Vec2{})
	outer := Resolve(&s.Radius, frame, ScalarConverter, 50)
	points := int(Resolve(&s.Points, frame, ScalarConverter, 5))
	if points < 3 {
		points = 3
	}
	var verts [][2]float64
	for i := 0; i < points; i++ {
		angle := float64(i) * 2 * math.Pi / float64(points)
		verts = append(verts, [2]float64{pos.X + outer*math.Cos(angle), pos.Y + outer*math.Sin(angle)})
	}
	return BezierPath{Closed: true, Vertices: verts}
}

// --- shape modifiers -------------------------------------------------
//
// Each modifier rewrites every path currently pending, operating on the
// path's vertex polygon directly rather than re-deriving bezier tangents,
// so a modifier downstream of a curved geometry (ellipse, rounded rect)
// sees it as the flattened polyline the renderer will eventually draw —
// an approximation this module accepts since it has no symbolic-curve
// offsetting code elsewhere either.

func applyShapeModifier(pending []BezierPath, s Shape, frame float64) []BezierPath {
	switch s.Type {
	case ShapeTypeRoundCorners:
		radius := Resolve(&s.Radius, frame, ScalarConverter, 0)
		return mapPaths(pending, func(p BezierPath) BezierPath { return roundCorners(p, radius) })
	case ShapeTypeZigZag:
		amp := Resolve(&s.Radius, frame, ScalarConverter, 0)
		freq := Resolve(&s.Points, frame, ScalarConverter, 1)
		return mapPaths(pending, func(p BezierPath) BezierPath { return zigZagPath(p, amp, freq) })
	case ShapeTypePuckerBloat:
		amount := Resolve(&s.Amount, frame, ScalarConverter, 0)
		return mapPaths(pending, func(p BezierPath) BezierPath { return puckerBloat(p, amount) })
	case ShapeTypeTwist:
		angle := Resolve(&s.Amount, frame, ScalarConverter, 0)
		return mapPaths(pending, func(p BezierPath) BezierPath { return twistPath(p, angle) })
	case ShapeTypeOffsetPath:
		dist := Resolve(&s.Amount, frame, ScalarConverter, 0)
		return mapPaths(pending, func(p BezierPath) BezierPath { return offsetPath(p, dist) })
	case ShapeTypeWigglePath:
		amp := Resolve(&s.Radius, frame, ScalarConverter, 0)
		freq := Resolve(&s.Points, frame, ScalarConverter, 1)
		return mapPaths(pending, func(p BezierPath) BezierPath { return wigglePath(p, amp, freq, frame) })
	}
	return pending
}

func mapPaths(paths []BezierPath, f func(BezierPath) BezierPath) []BezierPath {
	out := make([]BezierPath, len(paths))
	for i, p := range paths {
		out[i] = f(p)
	}
	return out
}

// roundCorners replaces each vertex with a chamfer: two points pulled back
// toward the vertex's neighbors by radius (clamped to half the shorter
// adjacent edge), approximating a rounded corner without needing a true
// circular-arc fillet.
func roundCorners(p BezierPath, radius float64) BezierPath {
	n := len(p.Vertices)
	if n < 3 || radius <= 0 {
		return p
	}
	verts := make([][2]float64, 0, n*2)
	for i := 0; i < n; i++ {
		prev := p.Vertices[(i-1+n)%n]
		cur := p.Vertices[i]
		next := p.Vertices[(i+1)%n]
		toPrev := sub2(prev, cur)
		toNext := sub2(next, cur)
		r := math.Min(radius, math.Min(norm2(toPrev), norm2(toNext))/2)
		verts = append(verts, add2(cur, scale2(unit2(toPrev), r)), add2(cur, scale2(unit2(toNext), r)))
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

// zigZagPath injects freq ridge vertices per edge, alternating a normal
// offset of +/-amp, per spec §4.8's ZigZag modifier.
func zigZagPath(p BezierPath, amp, freq float64) BezierPath {
	n := len(p.Vertices)
	if n < 2 || amp == 0 {
		return p
	}
	ridges := int(math.Max(freq, 1))
	segCount := n
	if !p.Closed {
		segCount = n - 1
	}
	var verts [][2]float64
	sign := 1.0
	for i := 0; i < segCount; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		verts = append(verts, a)
		dir := sub2(b, a)
		normal := unit2([2]float64{-dir[1], dir[0]})
		for r := 1; r <= ridges; r++ {
			t := float64(r) / float64(ridges+1)
			base := [2]float64{a[0] + dir[0]*t, a[1] + dir[1]*t}
			verts = append(verts, add2(base, scale2(normal, amp*sign)))
			sign = -sign
		}
	}
	if !p.Closed {
		verts = append(verts, p.Vertices[n-1])
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

// puckerBloat scales every vertex toward (amount<0) or away from
// (amount>0) the path centroid by amount percent.
func puckerBloat(p BezierPath, amount float64) BezierPath {
	n := len(p.Vertices)
	if n == 0 || amount == 0 {
		return p
	}
	cx, cy := centroid(p.Vertices)
	factor := 1 + amount/100
	verts := make([][2]float64, n)
	for i, v := range p.Vertices {
		verts[i] = [2]float64{cx + (v[0]-cx)*factor, cy + (v[1]-cy)*factor}
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

// twistPath rotates each vertex about the path centroid by an angle
// proportional to its distance from the centroid, so the path's outer
// edge twists more than its core (spec §4.8's Twist). The center is
// derived from the path's own geometry, since Shape's "c" JSON field is
// already claimed by the paint Color field and Twist's explicit center
// point can't be carried without colliding with it.
func twistPath(p BezierPath, angleDeg float64) BezierPath {
	n := len(p.Vertices)
	if n == 0 || angleDeg == 0 {
		return p
	}
	cx, cy := centroid(p.Vertices)
	maxDist := 0.0
	for _, v := range p.Vertices {
		if d := math.Hypot(v[0]-cx, v[1]-cy); d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		return p
	}
	verts := make([][2]float64, n)
	for i, v := range p.Vertices {
		dx, dy := v[0]-cx, v[1]-cy
		theta := angleDeg * math.Pi / 180 * (math.Hypot(dx, dy) / maxDist)
		s, c := math.Sin(theta), math.Cos(theta)
		verts[i] = [2]float64{cx + dx*c - dy*s, cy + dx*s + dy*c}
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

// offsetPath pushes each vertex along its averaged adjacent-edge normal
// by dist, approximating a parallel-curve path offset.
func offsetPath(p BezierPath, dist float64) BezierPath {
	n := len(p.Vertices)
	if n < 2 || dist == 0 {
		return p
	}
	verts := make([][2]float64, n)
	for i, v := range p.Vertices {
		prev := p.Vertices[(i-1+n)%n]
		next := p.Vertices[(i+1)%n]
		n1 := unit2([2]float64{-(v[1] - prev[1]), v[0] - prev[0]})
		n2 := unit2([2]float64{-(next[1] - v[1]), next[0] - v[0]})
		avg := unit2(add2(n1, n2))
		verts[i] = add2(v, scale2(avg, dist))
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

// wigglePath perturbs each vertex along its local normal by a
// deterministic sinusoid keyed on frame and vertex index, so repeated
// calls at the same frame are stable (spec §4.8's WigglePath; this module
// avoids math/rand for the same determinism reasons its transition and
// displacement code does).
func wigglePath(p BezierPath, amp, freq, frame float64) BezierPath {
	n := len(p.Vertices)
	if n < 2 || amp == 0 {
		return p
	}
	verts := make([][2]float64, n)
	for i, v := range p.Vertices {
		prev := p.Vertices[(i-1+n)%n]
		next := p.Vertices[(i+1)%n]
		normal := unit2([2]float64{-(next[1] - prev[1]), next[0] - prev[0]})
		phase := frame*freq + float64(i)
		verts[i] = add2(v, scale2(normal, amp*math.Sin(phase)))
	}
	return BezierPath{Closed: p.Closed, Vertices: verts}
}

func sub2(a, b [2]float64) [2]float64   { return [2]float64{a[0] - b[0], a[1] - b[1]} }
func add2(a, b [2]float64) [2]float64   { return [2]float64{a[0] + b[0], a[1] + b[1]} }
func scale2(a [2]float64, s float64) [2]float64 { return [2]float64{a[0] * s, a[1] * s} }
func norm2(a [2]float64) float64        { return math.Hypot(a[0], a[1]) }

func unit2(a [2]float64) [2]float64 {
	m := norm2(a)
	if m == 0 {
		return [2]float64{0, 0}
	}
	return [2]float64{a[0] / m, a[1] / m}
}

func centroid(pts [][2]float64) (float64, float64) {
	var sx, sy float64
	for _, p := range pts {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(pts))
	if n == 0 {
		return 0, 0
	}
	return sx / n, sy / n
}

// --- path flattening ---------------------------------------------------

const pathFlattenSegments = 16

// flattenClosedPath samples a BezierPath's cubic-Bezier vertex chain into
// a polyline, consumed by mergePaths' rasterization and trimPaths' arc
// length walk.
func flattenClosedPath(p BezierPath) [][2]float64 {
	n := len(p.Vertices)
	if n == 0 {
		return nil
	}
	segCount := n
	if !p.Closed {
		segCount = n - 1
	}
	var pts [][2]float64
	for i := 0; i < segCount; i++ {
		p0 := p.Vertices[i]
		p1 := p.Vertices[(i+1)%n]
		var out0, in1 [2]float64
		if i < len(p.OutTangents) {
			out0 = p.OutTangents[i]
		}
		j := (i + 1) % n
		if j < len(p.InTangents) {
			in1 = p.InTangents[j]
		}
		c1 := add2(p0, out0)
		c2 := add2(p1, in1)
		for s := 0; s < pathFlattenSegments; s++ {
			t := float64(s) / float64(pathFlattenSegments)
			pts = append(pts, cubicBezierPoint(p0, c1, c2, p1, t))
		}
	}
	if !p.Closed {
		pts = append(pts, p.Vertices[n-1])
	}
	return pts
}

func cubicBezierPoint(p0, c1, c2, p1 [2]float64, t float64) [2]float64 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return [2]float64{
		a*p0[0] + b*c1[0] + c*c2[0] + d*p1[0],
		a*p0[1] + b*c1[1] + c*c2[1] + d*p1[1],
	}
}

// --- merge paths (boolean combination) ---------------------------------

// mergeGridRes is the side length of the coverage grid mergePaths
// rasterizes into; high enough to preserve silhouette detail for typical
// icon-scale shape layers without the cost of a full-resolution pass.
const mergeGridRes = 128

// mergePaths combines every path currently pending using mode (Lottie's
// merge mode: 1 and 2 union ("Merge" and "Add" are both plain unions in
// this model), 3 subtract (first path minus the rest), 4 intersect, 5
// exclude/xor), per spec §4.8. No polygon-clipping library is part of
// this module's dependency surface, so the combination is done by
// rasterizing each path into a shared coverage grid spanning their
// combined bounds, combining per-cell coverage counts according to mode,
// and recovering an outline by boundary tracing (a square-tracing walk in
// the same family as Moore-neighbor contour tracing).
func mergePaths(paths []BezierPath, mode int) []BezierPath {
	if len(paths) <= 1 {
		return paths
	}
	minX, minY, maxX, maxY := pathsBounds(paths)
	if !(maxX > minX) || !(maxY > minY) {
		return paths
	}
	w, h := mergeGridRes, mergeGridRes
	sx := float64(w) / (maxX - minX)
	sy := float64(h) / (maxY - minY)

	masks := make([][]bool, len(paths))
	counts := make([]int, w*h)
	for i, p := range paths {
		masks[i] = rasterizePath(p, minX, minY, sx, sy, w, h)
		for cell, v := range masks[i] {
			if v {
				counts[cell]++
			}
		}
	}

	result := make([]bool, w*h)
	switch mode {
	case 3: // subtract: first path minus the union of the rest
		first := masks[0]
		for cell := range result {
			covered := false
			for _, m := range masks[1:] {
				if m[cell] {
					covered = true
					break
				}
			}
			result[cell] = first[cell] && !covered
		}
	case 4: // intersect: every path covers the cell
		for cell := range result {
			result[cell] = counts[cell] == len(paths)
		}
	case 5: // exclude (xor): an odd number of paths cover the cell
		for cell := range result {
			result[cell] = counts[cell]%2 == 1
		}
	default: // union (modes 1 "Merge" and 2 "Add", and any unknown mode)
		for cell := range result {
			result[cell] = counts[cell] > 0
		}
	}

	contours := traceContours(result, w, h)
	out := make([]BezierPath, 0, len(contours))
	for _, c := range contours {
		verts := make([][2]float64, len(c))
		for i, cell := range c {
			verts[i] = [2]float64{minX + (float64(cell[0])+0.5)/sx, minY + (float64(cell[1])+0.5)/sy}
		}
		out = append(out, BezierPath{Closed: true, Vertices: verts})
	}
	if len(out) == 0 {
		return paths
	}
	return out
}

func pathsBounds(paths []BezierPath) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range paths {
		for _, v := range p.Vertices {
			if v[0] < minX {
				minX = v[0]
			}
			if v[0] > maxX {
				maxX = v[0]
			}
			if v[1] < minY {
				minY = v[1]
			}
			if v[1] > maxY {
				maxY = v[1]
			}
		}
	}
	return
}

// rasterizePath even-odd fills p's flattened polyline into a w x h grid
// covering [minX,minY]-anchored space at (sx,sy) cells per unit.
func rasterizePath(p BezierPath, minX, minY, sx, sy float64, w, h int) []bool {
	poly := flattenClosedPath(p)
	mask := make([]bool, w*h)
	n := len(poly)
	if n < 3 {
		return mask
	}
	for gy := 0; gy < h; gy++ {
		y := minY + (float64(gy)+0.5)/sy
		var xs []float64
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if (a[1] <= y) != (b[1] <= y) {
				t := (y - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			gx0 := int((xs[i] - minX) * sx)
			gx1 := int((xs[i+1] - minX) * sx)
			if gx0 < 0 {
				gx0 = 0
			}
			for gx := gx0; gx <= gx1 && gx < w; gx++ {
				mask[gy*w+gx] = true
			}
		}
	}
	return mask
}

// traceContours walks the boundary of every connected component of mask
// using a square-tracing pass (Moore-neighbor style: at each boundary
// cell, search the 4-neighborhood clockwise starting just after the
// direction of arrival for the next boundary cell).
func traceContours(mask []bool, w, h int) [][][2]int {
	visited := make([]bool, w*h)
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask[y*w+x]
	}
	var contours [][][2]int
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if !at(sx, sy) || visited[sy*w+sx] || at(sx-1, sy) {
				continue
			}
			contour := traceOneContour(at, visited, sx, sy, w, h)
			if len(contour) >= 3 {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

func traceOneContour(at func(int, int) bool, visited []bool, startX, startY, w, h int) [][2]int {
	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} // N, E, S, W
	x, y := startX, startY
	dir := 1 // entered this pixel from the west, so face E
	var contour [][2]int
	limit := 4 * w * h
	for steps := 0; steps < limit; steps++ {
		if !visited[y*w+x] {
			visited[y*w+x] = true
			contour = append(contour, [2]int{x, y})
		}
		moved := false
		for i := 0; i < 4; i++ {
			d := ((dir-1+i)%4 + 4) % 4
			nx, ny := x+dirs[d][0], y+dirs[d][1]
			if at(nx, ny) {
				x, y, dir = nx, ny, d
				moved = true
				break
			}
		}
		if !moved || (x == startX && y == startY) {
			break
		}
	}
	return contour
}

// --- trim paths ----------------------------------------------------------

// trimPathsOffset slices every path to the arc-length subrange
// [start,end] of its perimeter (fractions of total length), rotated by
// offset, per spec §4.8's Trim Paths modifier. Each path is flattened to
// a polyline, its cumulative arc length computed, and the subrange
// endpoints located by interpolating between polyline samples. When the
// rotated range wraps past the path's start, the tail and head arcs are
// concatenated into one open path — this module's one-BezierPath-per-draw
// model can't emit the two disjoint subpaths a wrapped trim really
// produces, so the join shows as a visible straight segment between them.
func trimPathsOffset(paths []BezierPath, start, end, offset float64) []BezierPath {
	if start <= 0 && end >= 1 && offset == 0 {
		out := make([]BezierPath, len(paths))
		copy(out, paths)
		return out
	}
	s := wrap01(start + offset)
	e := wrap01(end + offset)
	out := make([]BezierPath, 0, len(paths))
	for _, p := range paths {
		out = append(out, trimOnePath(p, s, e))
	}
	return out
}

// trimPaths is the zero-offset form used by callers that don't track a
// rotating trim window.
func trimPaths(paths []BezierPath, start, end float64) []BezierPath {
	return trimPathsOffset(paths, start, end, 0)
}

func wrap01(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

func trimOnePath(p BezierPath, s, e float64) BezierPath {
	poly := flattenClosedPath(p)
	n := len(poly)
	if n < 2 {
		return p
	}
	cum := make([]float64, n+1)
	for i := 0; i < n; i++ {
		next := poly[(i+1)%n]
		cum[i+1] = cum[i] + math.Hypot(next[0]-poly[i][0], next[1]-poly[i][1])
	}
	total := cum[n]
	if total == 0 {
		return p
	}

	sampleAt := func(frac float64) [2]float64 {
		target := frac * total
		for i := 0; i < n; i++ {
			if cum[i+1] >= target {
				segLen := cum[i+1] - cum[i]
				t := 0.0
				if segLen > 0 {
					t = (target - cum[i]) / segLen
				}
				a := poly[i]
				b := poly[(i+1)%n]
				return [2]float64{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
			}
		}
		return poly[n-1]
	}
	collectRange := func(lo, hi float64) [][2]float64 {
		verts := [][2]float64{sampleAt(lo)}
		for i := 0; i < n; i++ {
			frac := cum[i] / total
			if frac > lo && frac < hi {
				verts = append(verts, poly[i])
			}
		}
		return append(verts, sampleAt(hi))
	}

	if s <= e {
		return BezierPath{Closed: false, Vertices: collectRange(s, e)}
	}
	tail := collectRange(s, 1)
	head := collectRange(0, e)
	return BezierPath{Closed: false, Vertices: append(tail, head...)}
}

func dominantGradientStop(s Shape, frame float64) *Paint {
	stops := Resolve(&s.GradientStops, frame, func(c []float64) []float64 { return c }, nil)
	p := &Paint{A: 1}
	if len(stops) >= 3 {
		p.R, p.G, p.B = stops[0], stops[1], stops[2]
	}
	return p
}

func applyGroupTransform(paths []MaterializedPath, tr *Transform2D, frame float64) {
	pos := Resolve(&tr.Position, frame, Vec2Converter, anim.Vec2{})
	anchor := Resolve(&tr.Anchor, frame, Vec2Converter, anim.Vec2{})
	for i := range paths {
		for j, v := range paths[i].Path.Vertices {
			paths[i].Path.Vertices[j] = [2]float64{v[0] - anchor.X + pos.X, v[1] - anchor.Y + pos.Y}
		}
	}
}

func repeatPaths(base []MaterializedPath, copies int, startOp, endOp float64) []MaterializedPath {
	if copies <= 1 {
		return nil
	}
	var out []MaterializedPath
	for c := 1; c < copies; c++ {
		frac := float64(c) / float64(copies-1)
		opacity := (startOp + (endOp-startOp)*frac) / 100
		for _, mp := range base {
			cp := mp
			if cp.Fill != nil {
				f := *cp.Fill
				f.A *= opacity
				cp.Fill = &f
			}
			if cp.Stroke != nil {
				st := *cp.Stroke
				st.A *= opacity
				cp.Stroke = &st
			}
			out = append(out, cp)
		}
	}
	return out
}
