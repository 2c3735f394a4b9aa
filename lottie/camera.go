package lottie

// CameraData holds a resolved camera layer's view parameters, per spec
// §4.8's camera-layer resolution: a perspective distance (in pixels, taken
// from the z component of the camera layer's position) used to build a
// simple look-at/perspective matrix. No separate field-of-view or "pe"
// value is parsed.
type CameraData struct {
	PerspectiveDistance float64
}

// ResolveCamera takes the perspective distance from the z component of the
// layer's Transform.Position at frame, using 1000 when z is absent or not
// positive.
func ResolveCamera(layer *Layer, frame float64) CameraData {
	dist := Resolve(&layer.Transform.Position, frame, func(c []float64) float64 {
		if len(c) > 2 {
			return c[2]
		}
		return 1000
	}, 1000)
	if dist <= 0 {
		dist = 1000
	}
	return CameraData{PerspectiveDistance: dist}
}

// ComposeCameraTransform builds the camera's view-projection matrix: an
// inverse look-at (the camera's own world transform, inverted, since a
// camera's transform positions the viewer rather than content) composed
// with a perspective projection driven by PerspectiveDistance.
func ComposeCameraTransform(layer *Layer, frame float64) Mat4 {
	world := ComposeTransform(layer, frame)
	view := invertRigid(world)
	cam := ResolveCamera(layer, frame)
	return mat4Mul(perspective(cam.PerspectiveDistance), view)
}

// perspective builds a simple perspective-divide matrix with the camera at
// distance d from the z=0 plane, matching After Effects' one-node-point
// camera model (no separate near/far clip planes in Lottie's schema).
func perspective(d float64) Mat4 {
	m := Identity4()
	if d == 0 {
		return m
	}
	m[11] = -1 / d
	return m
}

// invertRigid inverts a rotation+translation matrix (no scale/skew),
// which is what a camera's own ComposeTransform produces when scale is
// left at its default 100%: transpose the rotation block, negate the
// translation rotated by the transpose.
func invertRigid(m Mat4) Mat4 {
	var out Mat4
	// Transpose the 3x3 rotation block (columns become rows).
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[c*4+r] = m[r*4+c]
		}
	}
	out[15] = 1
	tx, ty, tz := m[12], m[13], m[14]
	out[12] = -(out[0]*tx + out[4]*ty + out[8]*tz)
	out[13] = -(out[1]*tx + out[5]*ty + out[9]*tz)
	out[14] = -(out[2]*tx + out[6]*ty + out[10]*tz)
	return out
}
