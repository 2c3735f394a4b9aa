// Package scene implements the arena-based scene graph: a dense,
// NodeId-indexed slot array with cycle-safe hierarchy edges and a masking
// model expressed as a directed owning claim.
//
// The shape follows phanxgames-willow's node.go (AddChild/RemoveChild,
// isAncestor cycle detection, recursive disposal), transformed from a
// pointer-based *Node tree into an arena of recyclable integer slots.
package scene

import "github.com/kinetic-motion/director/direrr"

// NodeId is a dense integer index into the arena's slot array. An id is
// valid only while its slot is occupied; stale ids fail softly (operations
// return a zero value / false / nil error) rather than panicking, since
// script input must never panic the pipeline.
type NodeId struct {
	index uint32
	gen   uint32
}

// Nil is the zero NodeId; it never refers to a live slot.
var Nil = NodeId{}

// BlendMode enumerates the Porter-Duff/separable compositing modes a node
// may use. The zero value is SrcOver (normal painting).
type BlendMode int

const (
	BlendSrcOver BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendClear
	BlendSrc
	BlendDst
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcAtop
	BlendDstAtop
	BlendXor
	BlendPlusLighter
	BlendPlusDarker
	BlendHardMix
	BlendLinearBurn
)

// Rect is an absolute axis-aligned rectangle written by the layout engine.
type Rect struct {
	X, Y, W, H float64
}

// Transform is a node's local affine state plus its pivot and an optional
// path-animation sub-state.
type Transform struct {
	X, Y               float64
	ScaleX, ScaleY     float64
	Rotation           float64 // radians
	SkewX, SkewY       float64
	PivotX, PivotY     float64
	PathProgress       float64 // [0,1] path-animation progress
	pathArcLengthCache float64
	dirty              bool
}

// DefaultTransform returns the identity transform (scale 1, all else 0).
func DefaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, dirty: true}
}

// AudioBinding maps a track's band energy onto a numeric property.
type AudioBinding struct {
	TrackID   string
	Band      AudioBand
	Property  string
	Min, Max  float64
	Smoothing float64 // [0,1)
	prevValue float64
	hasPrev   bool
}

// AudioBand names the three fixed analysis bands.
type AudioBand int

const (
	BandBass AudioBand = iota
	BandMids
	BandHighs
)

// Element is the capability set every node kind implements (spec §4.3).
// Concrete kinds live in package elements; scene only depends on this
// narrow interface to avoid an import cycle.
type Element interface {
	// Kind returns a stable name used for logging and script dispatch.
	Kind() string
	// Update advances the element's own animated tracks to local time t
	// and reports whether any visible state changed.
	Update(t float64) bool
	// IsContainer reports whether this element kind may have children
	// laid out inside it (Box, Composition) as opposed to a leaf (Image).
	IsContainer() bool
}

// SceneNode is the content of one occupied arena slot.
type SceneNode struct {
	Element       Element
	Children      []NodeId
	Parent        NodeId
	LayoutRect    Rect
	Transform     Transform
	MaskNode      NodeId
	BlendMode     BlendMode
	ZIndex        int
	LocalTime     float64
	AudioBindings []AudioBinding
	DirtyStyle    bool
	Alpha         float64

	WorldTransform [6]float64
	WorldAlpha     float64

	IsAdjustmentLayer bool
}

type slot struct {
	node     *SceneNode
	gen      uint32
	occupied bool
}

// Arena is the dense slot array backing the scene graph. The zero value is
// not usable; construct with NewArena.
type Arena struct {
	slots    []slot
	freeList []uint32
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add allocates a new node holding element and returns its id.
func (a *Arena) Add(element Element) NodeId {
	n := &SceneNode{
		Element:   element,
		Parent:    Nil,
		MaskNode:  Nil,
		Alpha:     1,
		Transform: DefaultTransform(),
	}
	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		s := &a.slots[idx]
		s.node = n
		s.occupied = true
		s.gen++
		return NodeId{index: idx, gen: s.gen}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{node: n, occupied: true, gen: 0})
	return NodeId{index: idx, gen: 0}
}

// Get returns the node for id, or nil if the id is stale or unknown.
func (a *Arena) Get(id NodeId) *SceneNode {
	if int(id.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.index]
	if !s.occupied || s.gen != id.gen {
		return nil
	}
	return s.node
}

// Destroy recursively frees id's subtree: detaches from its parent (if any),
// recurses into children, then frees id's own slot. A stale id is a no-op.
func (a *Arena) Destroy(id NodeId) {
	n := a.Get(id)
	if n == nil {
		return
	}
	if n.Parent != Nil {
		a.RemoveChild(n.Parent, id)
	}
	children := append([]NodeId(nil), n.Children...)
	for _, c := range children {
		a.Destroy(c)
	}
	idx := id.index
	a.slots[idx].node = nil
	a.slots[idx].occupied = false
	a.freeList = append(a.freeList, idx)
}

// isAncestor reports whether candidate appears in id's ancestor chain,
// walking parent links. Grounded on willow's node.go isAncestor, adapted
// from pointer comparison to NodeId comparison.
func (a *Arena) isAncestor(id, candidate NodeId) bool {
	cur := id
	for cur != Nil {
		if cur == candidate {
			return true
		}
		n := a.Get(cur)
		if n == nil {
			return false
		}
		cur = n.Parent
	}
	return false
}

// TryAddChild attaches child to parent's Children, detaching it from any
// previous parent first. Returns false (refusing the operation) if either
// id is dead, parent == child, or attaching would create a cycle.
func (a *Arena) TryAddChild(parent, child NodeId) bool {
	if parent == child {
		return false
	}
	pn := a.Get(parent)
	cn := a.Get(child)
	if pn == nil || cn == nil {
		return false
	}
	if a.isAncestor(parent, child) {
		return false
	}
	if cn.Parent != Nil {
		a.RemoveChild(cn.Parent, child)
	}
	pn.Children = append(pn.Children, child)
	cn.Parent = parent
	return true
}

// RemoveChild detaches child from parent's Children list, if present.
func (a *Arena) RemoveChild(parent, child NodeId) {
	pn := a.Get(parent)
	cn := a.Get(child)
	if pn == nil {
		return
	}
	for i, c := range pn.Children {
		if c == child {
			pn.Children = append(pn.Children[:i], pn.Children[i+1:]...)
			break
		}
	}
	if cn != nil && cn.Parent == parent {
		cn.Parent = Nil
	}
}

// SetMask establishes id's mask as maskID, re-parenting the mask subtree
// into id as a directed owning claim (spec §9 "Ownership graphs"). The
// mask node is detached from its previous parent and does not appear in
// id's Children.
func (a *Arena) SetMask(id, maskID NodeId) error {
	if id == maskID {
		return direrr.NewScript("SetMask", errSelfMask)
	}
	n := a.Get(id)
	m := a.Get(maskID)
	if n == nil || m == nil {
		return direrr.NewScript("SetMask", errStaleHandle)
	}
	if m.Parent != Nil {
		a.RemoveChild(m.Parent, maskID)
	}
	m.Parent = id
	n.MaskNode = maskID
	return nil
}

// ClearMask removes id's mask association, if any, leaving the former mask
// node parentless (matching willow's ClearMask which detaches rather than
// destroys).
func (a *Arena) ClearMask(id NodeId) {
	n := a.Get(id)
	if n == nil || n.MaskNode == Nil {
		return
	}
	if m := a.Get(n.MaskNode); m != nil && m.Parent == id {
		m.Parent = Nil
	}
	n.MaskNode = Nil
}

// Reset clears every slot, invalidating all outstanding ids.
func (a *Arena) Reset() {
	a.freeList = a.freeList[:0]
	for i := range a.slots {
		a.slots[i].node = nil
		a.slots[i].occupied = false
		a.freeList = append(a.freeList, uint32(i))
	}
}

// Walk performs a depth-first traversal starting at root, calling fn for
// each visited id. fn returning false skips that node's children but
// continues the walk elsewhere.
func (a *Arena) Walk(root NodeId, fn func(NodeId) bool) {
	n := a.Get(root)
	if n == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, c := range n.Children {
		a.Walk(c, fn)
	}
}

// Stats reports live and free slot counts.
type Stats struct {
	Live int
	Free int
}

// Stats returns the arena's current occupancy.
func (a *Arena) Stats() Stats {
	free := len(a.freeList)
	return Stats{Live: len(a.slots) - free, Free: free}
}
