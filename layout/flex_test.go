package layout

import (
	"testing"

	"github.com/kinetic-motion/director/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boxElement struct{ style Style }

func (b boxElement) Kind() string          { return "Box" }
func (b boxElement) Update(t float64) bool { return false }
func (b boxElement) IsContainer() bool     { return true }
func (b boxElement) LayoutStyle() Style    { return b.style }

func TestRowEqualGrowDistributesSpace(t *testing.T) {
	a := scene.NewArena()
	root := a.Add(boxElement{style: Style{Direction: Row, Width: Fixed(300), Height: Fixed(100)}})
	c1 := a.Add(boxElement{style: Style{Grow: 1, Width: AutoSize, Height: AutoSize}})
	c2 := a.Add(boxElement{style: Style{Grow: 1, Width: AutoSize, Height: AutoSize}})
	require.True(t, a.TryAddChild(root, c1))
	require.True(t, a.TryAddChild(root, c2))

	eng := New(a)
	eng.Layout(root, scene.Rect{W: 300, H: 100})

	r1 := a.Get(c1).LayoutRect
	r2 := a.Get(c2).LayoutRect
	assert.InDelta(t, 150, r1.W, 1e-6)
	assert.InDelta(t, 150, r2.W, 1e-6)
	assert.InDelta(t, 150, r2.X, 1e-6)
}

func TestJustifyCenterWithFixedChildren(t *testing.T) {
	a := scene.NewArena()
	root := a.Add(boxElement{style: Style{Direction: Row, Justify: JustifyCenter, Width: Fixed(100), Height: Fixed(50)}})
	c1 := a.Add(boxElement{style: Style{Width: Fixed(20), Height: Fixed(20)}})
	require.True(t, a.TryAddChild(root, c1))

	eng := New(a)
	eng.Layout(root, scene.Rect{W: 100, H: 50})

	r1 := a.Get(c1).LayoutRect
	assert.InDelta(t, 40, r1.X, 1e-6)
}
