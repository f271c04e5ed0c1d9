// Package tree projects a decoded JSON value into an ordered hierarchy of
// addressable nodes. The projection is pure: it is computed once per
// document and treated as immutable afterwards.
package tree

import (
	"strconv"
	"strings"

	"github.com/oakwood-commons/jvx/pkg/loader"
)

// AddressKind tags the three ways a node can be reached from its parent.
type AddressKind int

const (
	// KindRoot marks the single leaf produced when the whole document is a
	// scalar. It is also the zero value, so Address{} is the root address.
	KindRoot AddressKind = iota
	// KindObjectKey marks a node reached through a named object field.
	KindObjectKey
	// KindArrayIndex marks a node reached through a positional array slot.
	KindArrayIndex
)

// Address identifies one node relative to its parent. Addresses are
// comparable and usable as map keys; two addresses are equal iff their kind
// and payload match exactly.
type Address struct {
	kind  AddressKind
	key   string
	index int
}

// ObjectKey returns the address of a named object field.
func ObjectKey(name string) Address {
	return Address{kind: KindObjectKey, key: name}
}

// ArrayIndex returns the address of a positional array slot.
func ArrayIndex(i int) Address {
	return Address{kind: KindArrayIndex, index: i}
}

// Root returns the distinguished root address.
func Root() Address {
	return Address{}
}

// Kind returns the address tag.
func (a Address) Kind() AddressKind { return a.kind }

// Key returns the object key payload. Meaningful only for KindObjectKey.
func (a Address) Key() string { return a.key }

// Index returns the array index payload. Meaningful only for KindArrayIndex.
func (a Address) Index() int { return a.index }

// String renders the address as display text: the key, the index as
// decimal, or the empty string for the root address.
func (a Address) String() string {
	switch a.kind {
	case KindObjectKey:
		return a.key
	case KindArrayIndex:
		return strconv.Itoa(a.index)
	default:
		return ""
	}
}

// Path is the ordered sequence of addresses from the document root down to
// a node. It uniquely identifies the node's position.
type Path []Address

// Child returns a new path extended by one address. The receiver is not
// modified and no storage is shared, so paths stay safe to retain.
func (p Path) Child(a Address) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = a
	return child
}

// Parent returns the path with its last segment removed, and false when the
// path is already at top level.
func (p Path) Parent() (Path, bool) {
	if len(p) <= 1 {
		return nil, false
	}
	return p[:len(p)-1], true
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Pointer encodes the path as a JSON-Pointer-like string (RFC 6901
// escaping: "~" -> "~0", "/" -> "~1"). The encoding is unambiguous for
// object keys and array indices alike, which makes it usable as a set and
// map key for selection and expansion tracking.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range p {
		b.WriteByte('/')
		b.WriteString(escapePointerSegment(a.String()))
	}
	return b.String()
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Node is one JSON value's projected representation.
type Node struct {
	Addr     Address
	Label    string
	Children []Node
}

// Expandable reports whether the node has children to reveal. Empty
// containers behave like leaves: they keep their container-style label but
// there is nothing to expand, so toggling them is inert.
func (n Node) Expandable() bool {
	return len(n.Children) > 0
}

// Project converts a decoded document into the top-level node sequence. If
// the root is an object or array its entries become the sequence directly,
// with no synthetic wrapper node. A scalar root projects to a single leaf
// carrying the root address and the scalar's JSON text as its label.
func Project(value any) []Node {
	switch v := value.(type) {
	case loader.Object:
		return projectObject(v)
	case []any:
		return projectArray(v)
	default:
		return []Node{{Addr: Root(), Label: loader.JSONText(v)}}
	}
}

func projectValue(addr Address, value any) Node {
	switch v := value.(type) {
	case loader.Object:
		return Node{Addr: addr, Label: addr.String(), Children: projectObject(v)}
	case []any:
		return Node{Addr: addr, Label: addr.String(), Children: projectArray(v)}
	default:
		return Node{Addr: addr, Label: addr.String() + ": " + loader.JSONText(v)}
	}
}

func projectObject(obj loader.Object) []Node {
	nodes := make([]Node, 0, len(obj))
	for _, m := range obj {
		nodes = append(nodes, projectValue(ObjectKey(m.Key), m.Value))
	}
	return nodes
}

func projectArray(arr []any) []Node {
	nodes := make([]Node, 0, len(arr))
	for i, v := range arr {
		nodes = append(nodes, projectValue(ArrayIndex(i), v))
	}
	return nodes
}

// At resolves a path against the top-level node sequence, returning the
// addressed node. The second result is false when the path does not match
// any node.
func At(nodes []Node, p Path) (Node, bool) {
	var found Node
	level := nodes
	for depth, addr := range p {
		matched := false
		for i := range level {
			if level[i].Addr == addr {
				found = level[i]
				matched = true
				break
			}
		}
		if !matched {
			return Node{}, false
		}
		if depth < len(p)-1 {
			level = found.Children
		}
	}
	if len(p) == 0 {
		return Node{}, false
	}
	return found, true
}
