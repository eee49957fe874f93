package tei

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is returned when the input is not well-formed XML.
var ErrMalformed = errors.New("malformed XML")

// node is one element of a parsed document. Namespaces are ignored: elements
// and attributes are matched by local name only.
type node struct {
	name     string
	attrs    map[string]string
	children []*node
	text     strings.Builder
}

// parse reads text into an element tree rooted at a synthetic document node.
// Input without any element yields an empty document.
func parse(text string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	doc := &node{}
	stack := []*node{doc}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			top.children = append(top.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text.Write(t)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unclosed element %q", ErrMalformed, stack[len(stack)-1].name)
	}
	return doc, nil
}

// child returns the first direct child named name.
func (n *node) child(name string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// childAttr returns the first direct child named name whose attribute key
// equals value.
func (n *node) childAttr(name, key, value string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if v, ok := c.attrs[key]; ok && c.name == name && v == value {
			return c
		}
	}
	return nil
}

// childrenNamed returns every direct child named name.
func (n *node) childrenNamed(name string) []*node {
	if n == nil {
		return nil
	}
	var out []*node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// path follows a chain of child names.
func (n *node) path(names ...string) *node {
	for _, name := range names {
		n = n.child(name)
	}
	return n
}

// descendant returns the first element named name in document order.
func (n *node) descendant(name string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.name == name {
			return c
		}
		if d := c.descendant(name); d != nil {
			return d
		}
	}
	return nil
}

// attr returns the named attribute and whether it is present.
func (n *node) attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.attrs[key]
	return v, ok
}

// innerText returns the element's own character data, trimmed of the
// indentation the serializer adds around child elements.
func (n *node) innerText() string {
	if n == nil {
		return ""
	}
	if len(n.children) > 0 {
		return strings.TrimSpace(n.text.String())
	}
	return n.text.String()
}

// textOr returns the element text, or fallback when the element is absent.
func (n *node) textOr(fallback string) string {
	if n == nil {
		return fallback
	}
	return n.innerText()
}

// attrOr returns the attribute value, or fallback when it is absent.
func (n *node) attrOr(key, fallback string) string {
	if v, ok := n.attr(key); ok {
		return v
	}
	return fallback
}
