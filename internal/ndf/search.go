package ndf

import (
	"github.com/warnodata/extractor/internal/util"
)

// Search returns every descendant of n whose Name or Type equals field, in
// depth-first pre-order. n itself is never matched.
func Search(n *Node, field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c == nil {
				continue
			}
			if c.Name == field || (c.Type != "" && c.Type == field) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// First returns the first match of Search.
func First(n *Node, field string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Name == field || (c.Type != "" && c.Type == field) {
			return c, true
		}
		if found, ok := First(c, field); ok {
			return found, true
		}
	}
	return nil, false
}

// Scalar returns the value carried by the first node matching field.
func Scalar(n *Node, field string) (string, bool) {
	match, ok := First(n, field)
	if !ok {
		return "", false
	}
	return ValueOf(match)
}

// ValueOf returns the scalar a node stands for: its own value, or for an
// object without one, the value of its first leaf child.
func ValueOf(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Value != "" || n.IsLeaf() {
		return n.Value, true
	}
	for _, c := range n.Children {
		if c != nil && c.IsLeaf() {
			return c.Value, true
		}
	}
	return "", false
}

// Tuple reads the value stored under key in a key/value map node. Keys may be
// written as references, so a key also matches on its last path segment.
func Tuple(mapNode *Node, key string) (string, bool) {
	if mapNode == nil {
		return "", false
	}
	for _, c := range mapNode.Children {
		if c == nil {
			continue
		}
		if c.Name == key || util.LastToken(c.Name) == key {
			return ValueOf(c)
		}
	}
	return "", false
}

// Values returns the direct children of a list node.
func Values(listNode *Node) []*Node {
	if listNode == nil {
		return nil
	}
	out := make([]*Node, 0, len(listNode.Children))
	for _, c := range listNode.Children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the scalar values of a list node's children.
func Strings(listNode *Node) []string {
	children := Values(listNode)
	out := make([]string, 0, len(children))
	for _, c := range children {
		if v, ok := ValueOf(c); ok {
			out = append(out, v)
		}
	}
	return out
}
