package lottie

import "testing"

func staticProp(vals ...float64) AnimatedProperty {
	return AnimatedProperty{Animated: 0, Static: vals}
}

func TestComposeTransformAppliesTranslation(t *testing.T) {
	layer := &Layer{
		ThreeD: 0,
		Transform: Transform2D{
			Position: staticProp(100, 50, 0),
			Anchor:   staticProp(0, 0, 0),
			Scale:    staticProp(100, 100),
			Opacity:  staticProp(50),
		},
	}
	m := ComposeTransform(layer, 0)
	if m[12] != 100 || m[13] != 50 {
		t.Fatalf("expected translation (100,50), got (%v,%v)", m[12], m[13])
	}
}

func TestComposeTransformZeroesThreeDFieldsFor2DLayers(t *testing.T) {
	layer := &Layer{
		ThreeD: 0,
		Transform: Transform2D{
			Position:    staticProp(10, 20, 999),
			RotationX:   staticProp(45),
			Orientation: staticProp(30),
		},
	}
	m := ComposeTransform(layer, 0)
	if m[14] != 0 {
		t.Fatalf("expected z translation forced to 0 for non-3D layer, got %v", m[14])
	}
}

func TestProcessLayersSkipsHiddenAndOutOfRange(t *testing.T) {
	layers := []Layer{
		{Name: "hidden", Hidden: true, InPoint: 0, OutPoint: 100},
		{Name: "out-of-range", InPoint: 10, OutPoint: 20},
		{Name: "visible", Type: 4, InPoint: 0, OutPoint: 100},
	}
	nodes := ProcessLayers(layers, 5, NewEvaluator())
	if len(nodes) != 1 || nodes[0].Name != "visible" {
		t.Fatalf("expected only the visible layer, got %d nodes", len(nodes))
	}
}

func TestPlayerExpandsPrecompWithTimeRemap(t *testing.T) {
	remap := AnimatedProperty{Animated: 0, Static: []float64{2}}
	asset := &Asset{
		Width: 100, Height: 100, FrameRate: 30,
		Layers: []Layer{
			{Name: "precomp", Type: 0, InPoint: 0, OutPoint: 100, RefID: "sub", TimeRemap: &remap},
		},
		Assets: []SubAsset{
			{ID: "sub", Layers: []Layer{
				{Name: "inner", Type: 4, InPoint: 0, OutPoint: 100},
			}},
		},
	}
	p := NewPlayer(asset)
	nodes := p.RenderFrame(0)
	if len(nodes) != 1 {
		t.Fatalf("expected one top-level node, got %d", len(nodes))
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].Name != "inner" {
		t.Fatalf("expected precomp to expand to its sub-asset's inner layer")
	}
}

func TestPlayerGuardsAgainstSelfReferentialPrecomp(t *testing.T) {
	asset := &Asset{
		Width: 10, Height: 10, FrameRate: 30,
		Layers: []Layer{
			{Name: "loop", Type: 0, InPoint: 0, OutPoint: 100, RefID: "loop"},
		},
		Assets: []SubAsset{
			{ID: "loop", Layers: []Layer{
				{Name: "loop", Type: 0, InPoint: 0, OutPoint: 100, RefID: "loop"},
			}},
		},
	}
	p := NewPlayer(asset)
	// Must return without infinite recursion.
	nodes := p.RenderFrame(0)
	if len(nodes) != 1 {
		t.Fatalf("expected one top-level node, got %d", len(nodes))
	}
}
