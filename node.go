package figure

import (
	"strconv"
	"strings"
)

// Node is one node of a scene tree as supplied by the host evaluator: a head
// tag plus child nodes, or a numeric or string atom. Nodes are treated as
// immutable by the kernel.
type Node struct {
	Head   string
	Leaves []*Node

	num   float64
	str   string
	isNum bool
	isStr bool
}

// NewNode returns an expression node with the given head and leaves.
func NewNode(head string, leaves ...*Node) *Node {
	return &Node{Head: head, Leaves: leaves}
}

// Num returns a numeric atom.
func Num(v float64) *Node {
	return &Node{isNum: true, num: v}
}

// Str returns a string atom.
func Str(s string) *Node {
	return &Node{isStr: true, str: s}
}

// Sym returns a symbol, i.e. a head with no leaves.
func Sym(name string) *Node {
	return &Node{Head: name}
}

// List returns a List node over the given leaves.
func List(leaves ...*Node) *Node {
	return NewNode("List", leaves...)
}

// Rule returns a Rule node binding an option name to a value.
func Rule(name string, value *Node) *Node {
	return NewNode("Rule", Sym(name), value)
}

// IsNum returns the numeric value of an atom, or false.
func (n *Node) IsNum() (float64, bool) {
	if n == nil || !n.isNum {
		return 0.0, false
	}
	return n.num, true
}

// IsStr returns the string value of an atom, or false.
func (n *Node) IsStr() (string, bool) {
	if n == nil || !n.isStr {
		return "", false
	}
	return n.str, true
}

// IsSym returns true if n is the symbol with the given name.
func (n *Node) IsSym(name string) bool {
	return n != nil && !n.isNum && !n.isStr && n.Head == name && len(n.Leaves) == 0
}

// HasForm returns true if n is an expression with the given head and one of
// the given leaf counts. An empty count list accepts any number of leaves.
func (n *Node) HasForm(head string, counts ...int) bool {
	if n == nil || n.isNum || n.isStr || n.Head != head {
		return false
	}
	if len(counts) == 0 {
		return true
	}
	for _, c := range counts {
		if len(n.Leaves) == c {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	if n == nil {
		return ""
	}
	if n.isNum {
		return strconv.FormatFloat(n.num, 'g', -1, 64)
	}
	if n.isStr {
		return n.str
	}
	if len(n.Leaves) == 0 {
		return n.Head
	}
	parts := make([]string, len(n.Leaves))
	for i, leaf := range n.Leaves {
		parts[i] = leaf.String()
	}
	return n.Head + "[" + strings.Join(parts, ", ") + "]"
}

// coords extracts a logical (x,y) pair from a List node of two numbers.
func coords(n *Node) (Point, error) {
	if !n.HasForm("List", 2) {
		return Point{}, ErrCoordinate
	}
	x, okx := n.Leaves[0].IsNum()
	y, oky := n.Leaves[1].IsNum()
	if !okx || !oky {
		return Point{}, ErrCoordinate
	}
	return Point{x, y}, nil
}

// numLeaves extracts all leaves of a List node as numbers.
func numLeaves(n *Node) ([]float64, error) {
	if !n.HasForm("List") {
		return nil, ErrCoordinate
	}
	vals := make([]float64, len(n.Leaves))
	for i, leaf := range n.Leaves {
		v, ok := leaf.IsNum()
		if !ok {
			return nil, ErrCoordinate
		}
		vals[i] = v
	}
	return vals, nil
}

// dataAndOptions splits the leaves of a primitive into positional data and
// Rule options.
func dataAndOptions(leaves []*Node) (data []*Node, options map[string]*Node, err error) {
	options = map[string]*Node{}
	for _, leaf := range leaves {
		if leaf.HasForm("Rule") {
			if len(leaf.Leaves) != 2 {
				return nil, nil, ErrStyle
			}
			name := leaf.Leaves[0]
			if s, ok := name.IsStr(); ok {
				options[s] = leaf.Leaves[1]
			} else if !name.isNum && len(name.Leaves) == 0 {
				options[name.Head] = leaf.Leaves[1]
			} else {
				return nil, nil, ErrStyle
			}
		} else {
			data = append(data, leaf)
		}
	}
	return data, options, nil
}
