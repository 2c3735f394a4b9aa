package lottie

// Player renders one Asset's layer tree into a per-frame RenderNode tree.
// An Asset is immutable and safely shared across many Players (spec §5);
// a Player owns the mutable per-instance state: its own Evaluator (goja
// runtimes are not safe for concurrent use) and a recursion guard against
// precomps that reference themselves.
type Player struct {
	Asset *Asset
	Eval  *Evaluator
}

// NewPlayer builds a Player over a shared, already-parsed Asset.
func NewPlayer(asset *Asset) *Player {
	return &Player{Asset: asset, Eval: NewEvaluator()}
}

// RenderFrame produces the render tree for the asset's top-level
// composition at the given frame number (not seconds — callers convert
// via Asset.FrameRate).
func (p *Player) RenderFrame(frame float64) []*RenderNode {
	return p.expandLayers(p.Asset.Layers, frame, map[string]bool{})
}

// expandLayers is ProcessLayers plus precomp expansion: a layer whose
// resolved type is "precomp" gets its RefID's sub-asset layers recursively
// expanded as children, with the optional time-remap property substituting
// for a direct frame pass-through (spec §4.8's precomp layer handling).
func (p *Player) expandLayers(layers []Layer, frame float64, visiting map[string]bool) []*RenderNode {
	nodes := ProcessLayers(layers, frame, p.Eval)

	nodeIdx := 0
	for i := len(layers) - 1; i >= 0; i-- {
		layer := &layers[i]
		if layer.Hidden || frame < layer.InPoint || frame >= layer.OutPoint {
			continue
		}
		if nodeIdx >= len(nodes) {
			break
		}
		node := nodes[nodeIdx]
		nodeIdx++

		kindName, supported := ResolveLayerType(layer.Type)
		if !supported || kindName != "precomp" || layer.RefID == "" || visiting[layer.RefID] {
			continue
		}
		subLayers, ok := p.Asset.PrecompByID(layer.RefID)
		if !ok {
			continue
		}
		subFrame := frame - layer.StartTime
		if layer.TimeRemap != nil {
			subFrame = Resolve(layer.TimeRemap, frame, ScalarConverter, subFrame) * p.Asset.FrameRate
		}
		visiting[layer.RefID] = true
		node.Children = p.expandLayers(subLayers, subFrame, visiting)
		delete(visiting, layer.RefID)
	}
	return nodes
}
