// Package layout implements the layout engine (C4): it walks the scene
// arena, builds a flex tree per spec §4.4, and writes absolute Rects back
// onto each node.
//
// No flex-layout binding (e.g. a Yoga wrapper) is present anywhere in the
// retrieval pack, and the process rules forbid fabricating an unverifiable
// module; this package is accordingly a documented standard-library
// exception (see DESIGN.md) implementing the flex subset SPEC_FULL.md §4.4
// names: direction, justify-content, align-items, grow/shrink/basis,
// padding, gap, and fixed/percentage sizing.
package layout

import "github.com/kinetic-motion/director/scene"

// Direction is the flex main axis.
type Direction int

const (
	Row Direction = iota
	Column
)

// Justify controls main-axis distribution.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align controls cross-axis alignment.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Size is a fixed, percentage, or auto dimension.
type Size struct {
	Auto    bool
	Percent bool
	Value   float64
}

// Fixed returns a fixed-pixel Size.
func Fixed(v float64) Size { return Size{Value: v} }

// Pct returns a percentage-of-parent Size.
func Pct(v float64) Size { return Size{Value: v, Percent: true} }

// AutoSize is the auto-sized Size.
var AutoSize = Size{Auto: true}

// Style is the subset of flex-container/item properties a node carries.
type Style struct {
	Direction  Direction
	Justify    Justify
	Align      Align
	Width      Size
	Height     Size
	Grow       float64
	Shrink     float64
	Basis      Size
	PaddingT   float64
	PaddingR   float64
	PaddingB   float64
	PaddingL   float64
	Gap        float64
}

// StyleProvider is implemented by elements that carry a layout Style
// (spec §4.3 "a layout style (flex container style)").
type StyleProvider interface {
	LayoutStyle() Style
}

// Engine walks an arena and writes layout_rect on every reachable node.
type Engine struct {
	arena *scene.Arena
}

// New returns a layout Engine bound to arena.
func New(arena *scene.Arena) *Engine {
	return &Engine{arena: arena}
}

// Layout lays out the subtree rooted at root within the given available
// rectangle (typically the viewport for a TimelineItem root). DirtyStyle on
// any node forces recomputation of that node's own box (layout still
// recurses into children regardless, since children's absolute rects
// depend on the parent's resolved box).
func (e *Engine) Layout(root scene.NodeId, available scene.Rect) {
	e.layoutNode(root, available)
}

func (e *Engine) layoutNode(id scene.NodeId, available scene.Rect) {
	n := e.arena.Get(id)
	if n == nil {
		return
	}
	style := styleOf(n)

	w := resolve(style.Width, available.W, available.W)
	h := resolve(style.Height, available.H, available.H)

	n.LayoutRect = scene.Rect{X: available.X, Y: available.Y, W: w, H: h}
	n.DirtyStyle = false

	if len(n.Children) == 0 {
		return
	}

	inner := scene.Rect{
		X: available.X + style.PaddingL,
		Y: available.Y + style.PaddingT,
		W: w - style.PaddingL - style.PaddingR,
		H: h - style.PaddingT - style.PaddingB,
	}
	e.layoutChildren(n.Children, style, inner)
}

func styleOf(n *scene.SceneNode) Style {
	if sp, ok := n.Element.(StyleProvider); ok {
		return sp.LayoutStyle()
	}
	return Style{Width: AutoSize, Height: AutoSize, Grow: 0, Shrink: 1}
}

func resolve(s Size, percentBase, fallback float64) float64 {
	switch {
	case s.Percent:
		return percentBase * s.Value / 100
	case s.Auto:
		return fallback
	default:
		return s.Value
	}
}

// layoutChildren performs a single-pass flex distribution along the
// parent's main axis: resolve basis sizes, distribute remaining space by
// grow/shrink weights, position by justify-content, then size/position the
// cross axis by align-items, before recursing into each child.
func (e *Engine) layoutChildren(children []scene.NodeId, parent Style, box scene.Rect) {
	mainSize := box.W
	crossSize := box.H
	if parent.Direction == Column {
		mainSize = box.H
		crossSize = box.W
	}

	type item struct {
		id          scene.NodeId
		style       Style
		basis       float64
		grow, shrink float64
	}
	items := make([]item, 0, len(children))
	totalBasis := 0.0
	totalGrow := 0.0
	for _, c := range children {
		cn := e.arena.Get(c)
		if cn == nil {
			continue
		}
		st := styleOf(cn)
		basis := st.Basis.Value
		if st.Basis.Auto || (st.Basis == Size{}) {
			if parent.Direction == Row {
				basis = resolve(st.Width, mainSize, mainSize/float64(len(children)))
			} else {
				basis = resolve(st.Height, mainSize, mainSize/float64(len(children)))
			}
		}
		items = append(items, item{id: c, style: st, basis: basis, grow: st.Grow, shrink: st.Shrink})
		totalBasis += basis
		totalGrow += st.Grow
	}
	gapTotal := parent.Gap * float64(maxInt(len(items)-1, 0))
	remaining := mainSize - totalBasis - gapTotal

	sizes := make([]float64, len(items))
	for i, it := range items {
		size := it.basis
		if remaining > 0 && totalGrow > 0 {
			size += remaining * (it.grow / totalGrow)
		} else if remaining < 0 && it.shrink > 0 {
			totalShrinkBasis := 0.0
			for _, it2 := range items {
				totalShrinkBasis += it2.shrink * it2.basis
			}
			if totalShrinkBasis > 0 {
				size += remaining * (it.shrink * it.basis / totalShrinkBasis)
			}
		}
		if size < 0 {
			size = 0
		}
		sizes[i] = size
	}

	usedMain := 0.0
	for _, s := range sizes {
		usedMain += s
	}
	usedMain += gapTotal
	freeSpace := mainSize - usedMain

	offset, gap := justifyOffsets(parent.Justify, freeSpace, parent.Gap, len(items))

	cursor := offset
	for i, it := range items {
		size := sizes[i]
		var rect scene.Rect
		crossOffset, crossExtent := crossLayout(parent.Align, it.style, crossSize, parent.Direction)
		if parent.Direction == Row {
			rect = scene.Rect{X: box.X + cursor, Y: box.Y + crossOffset, W: size, H: crossExtent}
		} else {
			rect = scene.Rect{X: box.X + crossOffset, Y: box.Y + cursor, W: crossExtent, H: size}
		}
		e.layoutNode(it.id, rect)
		cursor += size + gap
	}
}

func justifyOffsets(j Justify, freeSpace, gap float64, n int) (offset, effectiveGap float64) {
	switch j {
	case JustifyCenter:
		return freeSpace / 2, gap
	case JustifyEnd:
		return freeSpace, gap
	case JustifySpaceBetween:
		if n > 1 {
			return 0, gap + freeSpace/float64(n-1)
		}
		return 0, gap
	case JustifySpaceAround:
		if n > 0 {
			extra := freeSpace / float64(n)
			return extra / 2, gap + extra
		}
		return 0, gap
	default:
		return 0, gap
	}
}

func crossLayout(a Align, childStyle Style, crossSize float64, dir Direction) (offset, extent float64) {
	crossDim := childStyle.Height
	if dir == Column {
		crossDim = childStyle.Width
	}
	childCross := resolve(crossDim, crossSize, crossSize)
	switch a {
	case AlignCenter:
		return (crossSize - childCross) / 2, childCross
	case AlignEnd:
		return crossSize - childCross, childCross
	case AlignStretch:
		return 0, crossSize
	default:
		return 0, childCross
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
