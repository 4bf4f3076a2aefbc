// Package ndf models parsed descriptor trees and the generic accessors the
// extractors use to read them.
package ndf

// Node is one entry of a parsed descriptor tree.
//
// A leaf carries only Value. An object carries an ordered list of Children and
// may also carry a Type (the descriptor class, e.g. TAmmunitionDescriptor) and
// a Value (a reference-bearing object such as a module selector).
type Node struct {
	Name     string
	Type     string
	Value    string
	Children []*Node

	object bool
}

// Leaf builds a scalar node.
func Leaf(name, value string) *Node {
	return &Node{Name: name, Value: value}
}

// Object builds a container node with the given children.
func Object(name, typ string, children ...*Node) *Node {
	return &Node{Name: name, Type: typ, Children: children, object: true}
}

// WithValue sets the node's own value and returns it.
func (n *Node) WithValue(value string) *Node {
	n.Value = value
	return n
}

// IsLeaf reports whether n is a scalar node.
func (n *Node) IsLeaf() bool {
	return n != nil && !n.object && len(n.Children) == 0
}

// List builds an anonymous object whose children are leaves holding values.
func List(name string, values ...string) *Node {
	children := make([]*Node, 0, len(values))
	for _, v := range values {
		children = append(children, Leaf("", v))
	}
	return Object(name, "", children...)
}

// Map builds an object whose children are key/value leaves, in the given order.
// pairs alternates key, value.
func Map(name string, pairs ...string) *Node {
	children := make([]*Node, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		children = append(children, Leaf(pairs[i], pairs[i+1]))
	}
	return Object(name, "", children...)
}
