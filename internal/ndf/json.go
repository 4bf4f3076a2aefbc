package ndf

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned when a tree dump cannot be decoded.
var ErrInvalidDocument = errors.New("invalid descriptor document")

// DecodeJSON reads a tree dump produced by the descriptor parser. The document
// is either one node or an array of nodes, each shaped as
//
//	{"name": "...", "type": "...", "value": ..., "children": [...]}
//
// Scalar values of any JSON type are kept as their raw text.
func DecodeJSON(data []byte) ([]*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode json: %w", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)

	switch {
	case root.IsArray():
		var out []*Node
		var decodeErr error
		root.ForEach(func(_, v gjson.Result) bool {
			n, err := decodeJSONNode(v)
			if err != nil {
				decodeErr = err
				return false
			}
			out = append(out, n)
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return out, nil
	case root.IsObject():
		n, err := decodeJSONNode(root)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	default:
		return nil, fmt.Errorf("decode json: top level is %s: %w", root.Type, ErrInvalidDocument)
	}
}

func decodeJSONNode(v gjson.Result) (*Node, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("decode json: node is %s: %w", v.Type, ErrInvalidDocument)
	}

	name := v.Get("name").String()
	typ := v.Get("type").String()
	value := jsonScalar(v.Get("value"))

	children := v.Get("children")
	if !children.Exists() {
		n := Leaf(name, value)
		n.Type = typ
		return n, nil
	}

	n := Object(name, typ)
	n.Value = value
	var childErr error
	children.ForEach(func(_, c gjson.Result) bool {
		child, err := decodeJSONNode(c)
		if err != nil {
			childErr = fmt.Errorf("%s: %w", name, err)
			return false
		}
		n.Children = append(n.Children, child)
		return true
	})
	if childErr != nil {
		return nil, childErr
	}
	return n, nil
}

func jsonScalar(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
