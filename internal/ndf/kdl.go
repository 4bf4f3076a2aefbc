package ndf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// DecodeKDL reads a tree written in KDL. Each KDL node becomes a Node named
// after it; a `type=` property sets the descriptor class. A node with a single
// argument and no children is a leaf; several arguments become an anonymous
// list; children become object children.
//
//	Ammo_RocketArt_M21OF_122mm type=TAmmunitionDescriptor {
//	    PhysicalDamages 1.5
//	    TraitsToken "'HE'" "'INDIRECT'"
//	}
func DecodeKDL(r io.Reader) ([]*Node, error) {
	doc, err := kdl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("decode kdl: %w", err)
	}
	out := make([]*Node, 0, len(doc.Nodes))
	for _, kn := range doc.Nodes {
		out = append(out, fromKDL(kn))
	}
	return out, nil
}

func fromKDL(kn *document.Node) *Node {
	name := kn.Name.ValueString()
	typ := ""
	if v, ok := kn.Properties["type"]; ok {
		typ = kdlScalar(v)
	}

	if len(kn.Children) == 0 && len(kn.Arguments) <= 1 {
		value := ""
		if len(kn.Arguments) == 1 {
			value = kdlScalar(kn.Arguments[0])
		}
		if typ == "" {
			return Leaf(name, value)
		}
		return Object(name, typ).WithValue(value)
	}

	n := Object(name, typ)
	switch {
	case len(kn.Arguments) == 1:
		n.Value = kdlScalar(kn.Arguments[0])
	case len(kn.Arguments) > 1:
		for _, a := range kn.Arguments {
			n.Children = append(n.Children, Leaf("", kdlScalar(a)))
		}
	}
	for _, c := range kn.Children {
		n.Children = append(n.Children, fromKDL(c))
	}
	return n
}

func kdlScalar(v *document.Value) string {
	switch t := v.ResolvedValue().(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// LoadFile decodes a tree dump, choosing the format from the file extension.
func LoadFile(path string) ([]*Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		nodes, err := DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nodes, nil
	case ".kdl":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		nodes, err := DecodeKDL(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nodes, nil
	default:
		return nil, fmt.Errorf("%s: unsupported extension: %w", path, ErrInvalidDocument)
	}
}
