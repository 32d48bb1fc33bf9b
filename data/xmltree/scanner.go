package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrNoRoot is returned by Scanner.Root for documents without any element.
var ErrNoRoot = errors.New("no root element")

// Matcher decides whether the element start, found below the ancestors in path,
// is decoded into a subtree and handed to the caller.
type Matcher func(path []string, start xml.StartElement) bool

// Scanner walks a document and materializes only the matched elements, so memory
// stays bounded by the largest matched subtree.
type Scanner struct {
	dec  *xml.Decoder
	path []string
	root *xml.StartElement
}

func NewScanner(r io.Reader) *Scanner {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	return &Scanner{dec: dec}
}

// Root advances to the document element and returns its local name.
func (s *Scanner) Root() (string, error) {
	if s.root != nil {
		return s.root.Name.Local, nil
	}

	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			return "", ErrNoRoot
		}
		if err != nil {
			return "", err
		}

		if start, ok := tok.(xml.StartElement); ok {
			start = start.Copy()
			s.root = &start
			s.path = append(s.path, start.Name.Local)
			return start.Name.Local, nil
		}
	}
}

// RootAttrs returns the attributes of the document element.
func (s *Scanner) RootAttrs() map[string]string {
	attrs := make(map[string]string)
	if s.root == nil {
		return attrs
	}
	for _, a := range s.root.Attr {
		attrs[a.Name.Local] = a.Value
	}
	return attrs
}

// Next returns the next element accepted by match. It returns io.EOF once the
// document is exhausted.
func (s *Scanner) Next(match Matcher) (*Node, error) {
	if _, err := s.Root(); err != nil {
		return nil, err
	}

	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			if len(s.path) > 0 {
				return nil, fmt.Errorf("unexpected end of document inside <%s>", s.path[len(s.path)-1])
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if match(s.path, t) {
				node := &Node{}
				if err := node.UnmarshalXML(s.dec, t); err != nil {
					if err == io.EOF {
						err = io.ErrUnexpectedEOF
					}
					return nil, err
				}
				return node, nil
			}
			s.path = append(s.path, t.Name.Local)
		case xml.EndElement:
			if len(s.path) > 0 {
				s.path = s.path[:len(s.path)-1]
			}
		}
	}
}

// Depth reports how many elements are currently open.
func (s *Scanner) Depth() int {
	return len(s.path)
}
