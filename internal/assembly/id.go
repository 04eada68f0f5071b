package assembly

import (
	"strconv"
	"strings"
)

// NodeID identifies one node of a built assembly tree. It folds every raw
// catalog id on the path from the root into a single key, so siblings in
// different branches stay distinct even when they share a raw id. Segments
// are length-prefixed before joining, which makes the encoding a prefix
// code: no two distinct segment sequences can produce the same key, no
// matter what characters catalog ids contain.
//
// The trailing raw id is carried alongside the key because the price table
// is keyed by raw group ids; it is never recovered by parsing the key.
type NodeID struct {
	key string
	raw string
}

// RootID starts a composite id chain at a root group.
func RootID(rawID string) NodeID {
	return NodeID{key: encodeSegment(rawID), raw: rawID}
}

// Child derives the composite id of a node nested under n.
func (n NodeID) Child(rawID string) NodeID {
	return NodeID{key: n.key + "/" + encodeSegment(rawID), raw: rawID}
}

// Key returns the composite map key for this node.
func (n NodeID) Key() string {
	return n.key
}

// Raw returns the node's original catalog identifier.
func (n NodeID) Raw() string {
	return n.raw
}

func (n NodeID) IsZero() bool {
	return n.key == ""
}

func encodeSegment(s string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
	return b.String()
}
