package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubElement struct{ kind string }

func (s stubElement) Kind() string        { return s.kind }
func (s stubElement) Update(t float64) bool { return false }
func (s stubElement) IsContainer() bool   { return true }

func newBox(a *Arena) NodeId { return a.Add(stubElement{kind: "Box"}) }

func TestArenaIntegrity(t *testing.T) {
	a := NewArena()
	p := newBox(a)
	c := newBox(a)
	require.True(t, a.TryAddChild(p, c))

	pn := a.Get(p)
	cn := a.Get(c)
	require.NotNil(t, pn)
	require.NotNil(t, cn)
	assert.Equal(t, p, cn.Parent)
	assert.Contains(t, pn.Children, c)
}

func TestCycleRefusal(t *testing.T) {
	a := NewArena()
	x, y, z := newBox(a), newBox(a), newBox(a)
	require.True(t, a.TryAddChild(x, y))
	require.True(t, a.TryAddChild(y, z))

	assert.False(t, a.TryAddChild(z, x))
	assert.False(t, a.TryAddChild(x, x))

	xn := a.Get(x)
	assert.Equal(t, Nil, xn.Parent)
}

func TestReparent(t *testing.T) {
	a := NewArena()
	p1, p2, c := newBox(a), newBox(a), newBox(a)
	require.True(t, a.TryAddChild(p1, c))
	require.True(t, a.TryAddChild(p2, c))

	p1n := a.Get(p1)
	p2n := a.Get(p2)
	assert.NotContains(t, p1n.Children, c)
	assert.Contains(t, p2n.Children, c)
	assert.Equal(t, 1, countOccurrences(p2n.Children, c))
}

func TestDestroyRecursive(t *testing.T) {
	a := NewArena()
	p, c := newBox(a), newBox(a)
	require.True(t, a.TryAddChild(p, c))
	a.Destroy(p)

	assert.Nil(t, a.Get(p))
	assert.Nil(t, a.Get(c))
}

func TestStaleHandleAfterDestroyAndReuse(t *testing.T) {
	a := NewArena()
	id := newBox(a)
	a.Destroy(id)
	reused := newBox(a)

	// Slot index is recycled but generation differs, so the stale id must
	// not resolve to the new occupant.
	assert.Nil(t, a.Get(id))
	assert.NotNil(t, a.Get(reused))
}

func TestSetMaskReparents(t *testing.T) {
	a := NewArena()
	owner, maskNode, otherParent := newBox(a), newBox(a), newBox(a)
	require.True(t, a.TryAddChild(otherParent, maskNode))

	require.NoError(t, a.SetMask(owner, maskNode))

	mn := a.Get(maskNode)
	on := a.Get(owner)
	assert.Equal(t, owner, mn.Parent)
	assert.Equal(t, maskNode, on.MaskNode)
	assert.NotContains(t, a.Get(otherParent).Children, maskNode)
}

func countOccurrences(ids []NodeId, target NodeId) int {
	n := 0
	for _, id := range ids {
		if id == target {
			n++
		}
	}
	return n
}
