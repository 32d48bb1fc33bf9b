// Package xmltree reads XML documents into a small typed tree: every element
// becomes a Node with named children and a flat attribute map.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// UnmarshalXML builds the subtree rooted at start. Namespaces are dropped, only
// local names are kept.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local
	for _, attr := range start.Attr {
		if n.Attrs == nil {
			n.Attrs = make(map[string]string, len(start.Attr))
		}
		n.Attrs[attr.Name.Local] = attr.Value
	}

	var text strings.Builder

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

// Child returns the first child with the given name or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns all children with the given name in document order.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, c := range n.Children {
		if c.Name == name {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// ChildText returns the text of the first child with the given name.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// Path follows a chain of first children, e.g. Path("Position", "LatitudeDegrees").
func (n *Node) Path(names ...string) *Node {
	curr := n
	for _, name := range names {
		curr = curr.Child(name)
		if curr == nil {
			return nil
		}
	}
	return curr
}

func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// String renders a short diagnostic summary: the element name, its attributes
// and the names of its direct children.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("<%s %v> children=%v", n.Name, n.Attrs, names)
}
