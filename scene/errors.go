package scene

import "errors"

var (
	errSelfMask    = errors.New("a node cannot mask itself")
	errStaleHandle = errors.New("stale node handle")
)
