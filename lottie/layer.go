package lottie

import "math"

// ComposeTransform resolves a layer's transform block at frame and
// composes it as T*Or*Rx*Ry*Rz*Skew*S*(-A), per spec §4.8. For 2D layers
// (ddd != 1) the z position, rx, ry, and orientation are forced to zero
// per the spec's resolution of Open Question 1; camera layers always get
// full 3D treatment via ComposeCameraTransform instead.
func ComposeTransform(layer *Layer, frame float64) Mat4 {
	tr := &layer.Transform
	pos := Resolve(&tr.Position, frame, Vec3OrPadConverter, [3]float64{})
	anchor := Resolve(&tr.Anchor, frame, Vec3OrPadConverter, [3]float64{})
	scale := Resolve(&tr.Scale, frame, scalePercentConverter, [2]float64{100, 100})
	rotation := Resolve(&tr.Rotation, frame, ScalarConverter, 0)
	skew := Resolve(&tr.Skew, frame, ScalarConverter, 0)
	skewAxis := Resolve(&tr.SkewAxis, frame, ScalarConverter, 0)

	is3D := layer.ThreeD == 1 || layer.Type == 13
	rx, ry, orient := 0.0, 0.0, 0.0
	if is3D {
		rx = Resolve(&tr.RotationX, frame, ScalarConverter, 0)
		ry = Resolve(&tr.RotationY, frame, ScalarConverter, 0)
		orient = Resolve(&tr.Orientation, frame, ScalarConverter, 0)
	} else {
		pos[2] = 0
	}
	rz := rotation
	if is3D {
		rz = Resolve(&tr.RotationZ, frame, ScalarConverter, rotation)
	}

	m := mat4Translate(pos[0], pos[1], pos[2])
	m = mat4Mul(m, mat4RotateZ(degToRad(orient)))
	m = mat4Mul(m, mat4RotateX(degToRad(rx)))
	m = mat4Mul(m, mat4RotateY(degToRad(ry)))
	m = mat4Mul(m, mat4RotateZ(degToRad(rz)))
	m = mat4Mul(m, mat4Skew(degToRad(skew), degToRad(skewAxis)))
	m = mat4Mul(m, mat4Scale(scale[0]/100, scale[1]/100, 1))
	m = mat4Mul(m, mat4Translate(-anchor[0], -anchor[1], -anchor[2]))
	return m
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func Vec3OrPadConverter(c []float64) [3]float64 {
	var v [3]float64
	for i := 0; i < 3 && i < len(c); i++ {
		v[i] = c[i]
	}
	return v
}

func scalePercentConverter(c []float64) [2]float64 {
	v := [2]float64{100, 100}
	if len(c) > 0 {
		v[0] = c[0]
	}
	if len(c) > 1 {
		v[1] = c[1]
	}
	return v
}

func mat4Translate(x, y, z float64) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func mat4Scale(sx, sy, sz float64) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = sx, sy, sz
	return m
}

func mat4RotateZ(a float64) Mat4 {
	m := Identity4()
	c, s := math.Cos(a), math.Sin(a)
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

func mat4RotateX(a float64) Mat4 {
	m := Identity4()
	c, s := math.Cos(a), math.Sin(a)
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

func mat4RotateY(a float64) Mat4 {
	m := Identity4()
	c, s := math.Cos(a), math.Sin(a)
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

func mat4Skew(angle, axis float64) Mat4 {
	m := Identity4()
	t := math.Tan(angle)
	// Axis rotates which direction the skew shear is applied in, per
	// After Effects' skew-axis convention.
	m[4] = t * math.Cos(axis)
	m[1] = t * math.Sin(axis)
	return m
}

func mat4Mul(a, b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// ProcessLayers walks layers from the last entry to the first (bottom of
// the stack first, i.e. paint order), skipping hidden layers and those
// outside [InPoint, OutPoint), resolving transform/opacity and dispatching
// on layer type. A track-matte layer is paired with the layer listed
// directly above it, which is processed next (spec §4.8).
func ProcessLayers(layers []Layer, frame float64, ev *Evaluator) []*RenderNode {
	var out []*RenderNode
	var pendingMatteSource *RenderNode

	for i := len(layers) - 1; i >= 0; i-- {
		layer := &layers[i]
		if layer.Hidden || frame < layer.InPoint || frame >= layer.OutPoint {
			continue
		}
		node := buildLayerNode(layer, frame, ev)
		if pendingMatteSource != nil {
			pendingMatteSource.MatteNode = node
			pendingMatteSource = nil
		}
		if layer.TrackMatteType != 0 {
			node.Matte = MatteType(layer.TrackMatteType)
			pendingMatteSource = node
		}
		out = append(out, node)
	}
	return out
}

func buildLayerNode(layer *Layer, frame float64, ev *Evaluator) *RenderNode {
	kindName, supported := ResolveLayerType(layer.Type)
	node := &RenderNode{
		Name:      layer.Name,
		Transform: ComposeTransform(layer, frame),
		Alpha:     Resolve(&layer.Transform.Opacity, frame, ScalarConverter, 100) / 100,
		Kind:      ContentGroup,
		Effects:   ResolveLayerEffects(layer.Effects, frame),
	}
	if !supported {
		return node
	}
	switch kindName {
	case "shape":
		node.Kind = ContentShape
		node.Paths = ProcessShapes(layer.Shapes, frame)
	case "image":
		node.Kind = ContentImage
		node.ImageRef = layer.RefID
	case "text":
		node.Kind = ContentText
		if layer.Text != nil {
			doc := layer.Text.Document
			node.Text = doc.Text
			node.FontFamily = doc.FontFamily
			node.FontSize = doc.FontSize
			node.TextJustify = doc.Justify
			paint := &Paint{A: 1}
			if len(doc.FillColor) >= 3 {
				paint.R, paint.G, paint.B = doc.FillColor[0], doc.FillColor[1], doc.FillColor[2]
			}
			node.TextFill = paint
		}
	case "audio":
		node.AudioEvent = &RuntimeAudioEvent{LayerName: layer.Name, AssetRef: layer.RefID, Time: frame}
	case "data":
		node.DataBinding = &RuntimeDataBinding{LayerName: layer.Name, Key: layer.Name, Value: frame}
	case "camera":
		node.Transform = ComposeCameraTransform(layer, frame)
	case "precomp", "solid", "null":
		// precomp sub-builder, solid fill, and null (transform-only) all
		// resolve to a transform-carrying group node; precomp content is
		// expanded by the Player from the referenced sub-asset.
	}
	return node
}
