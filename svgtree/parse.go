package svgtree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/benoitkugler/svgmesh"
	"github.com/benoitkugler/svgmesh/svgpath"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode logs a warning (through svgmesh.Logger)
	// for each unsupported element
	WarnErrorMode

	// StrictErrorMode returns an error on the first unsupported element
	StrictErrorMode
)

var (
	errParamMismatch   = errors.New("param mismatch")
	errInvalidDocument = errors.New("invalid svg document")
	errInvalidSize     = errors.New("invalid svg document size")
	errUseDepth        = errors.New("too many nested use elements")
)

// maxUseDepth bounds the nesting of use elements, which
// may reference each other.
const maxUseDepth = 16

// these elements and their content are never rendered directly
var nonRendered = map[string]bool{
	"clipPath":       true,
	"mask":           true,
	"pattern":        true,
	"marker":         true,
	"linearGradient": true,
	"radialGradient": true,
	"filter":         true,
	"style":          true,
	"script":         true,
	"metadata":       true,
	"foreignObject":  true,
}

// the content of these elements is only rendered through use
var templates = map[string]bool{
	"defs":   true,
	"symbol": true,
}

type (
	// frame is pushed for every open element
	frame struct {
		transform svgpath.Matrix2D // absolute transform
		group     bool             // the element opened a group
		text      bool             // the element opened a text node
	}

	// definition is a recorded element, which may be
	// instantiated by use. Closing tags are recorded with end set.
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
		end     bool
	}

	// treeCursor is used while parsing SVG files
	treeCursor struct {
		tree      *Tree
		errorMode ErrorMode

		frames []frame
		groups []*Group // the last one receives new nodes
		text   *Text    // non nil inside a text element

		seenRoot, rootDone      bool
		inTitleText, inDescText bool

		skipDepth     int // > 0 inside non rendered elements
		templateDepth int // > 0 inside defs and symbol
		defs          []definition
		useDepth      int
	}
)

// Parse reads an SVG document from its content.
// See ReadTreeStream for the supported features.
func Parse(data []byte, errMode ErrorMode) (*Tree, error) {
	return ReadTreeStream(bytes.NewReader(data), errMode)
}

// ReadTree reads the document from the named file.
// See ReadTreeStream for the supported features.
func ReadTree(filename string, errMode ErrorMode) (*Tree, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadTreeStream(fin, errMode)
}

// ReadTreeStream reads the document from the given io.Reader.
// This only supports a sub-set of SVG, but is enough for
// most icons and drawings. errMode determines if the parser ignores,
// errors out, or logs a warning when it does not handle an element.
// Malformed XML, numbers or path data are always errors.
func ReadTreeStream(stream io.Reader, errMode ErrorMode) (*Tree, error) {
	tree := &Tree{Root: &Group{Transform: svgpath.Identity}}
	c := &treeCursor{
		tree:      tree,
		errorMode: errMode,
		frames:    []frame{{transform: svgpath.Identity}},
		groups:    []*Group{tree.Root},
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if err = c.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			c.readEndElement(se)
		case xml.CharData:
			c.readCharData(se)
		}
	}
	if !c.seenRoot {
		return nil, errInvalidDocument
	}
	return tree, nil
}

func (c *treeCursor) handleError(msg string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New(msg)
	case WarnErrorMode:
		svgmesh.Logger().Warn(msg)
	}
	return nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// isHidden returns true for display="none", either as
// attribute or in the style attribute.
func isHidden(attrs []xml.Attr) bool {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "display":
			if strings.TrimSpace(attr.Value) == "none" {
				return true
			}
		case "style":
			for _, pair := range strings.Split(attr.Value, ";") {
				kv := strings.Split(pair, ":")
				if len(kv) == 2 && strings.TrimSpace(kv[0]) == "display" && strings.TrimSpace(kv[1]) == "none" {
					return true
				}
			}
		}
	}
	return false
}

func (c *treeCursor) readStartElement(se xml.StartElement) error {
	if !c.seenRoot {
		if se.Name.Local != "svg" {
			return fmt.Errorf("%w: unexpected root element <%s>", errInvalidDocument, se.Name.Local)
		}
		c.seenRoot = true
		if err := c.startElement(se.Name.Local, se.Attr); err != nil {
			return err
		}
		if isHidden(se.Attr) { // the size is still read and checked
			c.skipDepth = 1
		}
		return nil
	}
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	if nonRendered[se.Name.Local] || isHidden(se.Attr) {
		c.skipDepth = 1
		return nil
	}
	// every element may be referenced by a later use
	c.defs = append(c.defs, definition{
		ID:    attrValue(se.Attr, "id"),
		Tag:   se.Name.Local,
		Attrs: se.Attr,
	})
	if c.templateDepth > 0 {
		c.templateDepth++
		return nil
	}
	if templates[se.Name.Local] {
		c.templateDepth = 1
		return nil
	}
	return c.startElement(se.Name.Local, se.Attr)
}

func (c *treeCursor) readEndElement(se xml.EndElement) {
	if c.skipDepth > 0 {
		c.skipDepth--
		return
	}
	c.defs = append(c.defs, definition{Tag: se.Name.Local, end: true})
	if c.templateDepth > 0 {
		c.templateDepth--
		return
	}
	c.endElement()
}

func (c *treeCursor) readCharData(se xml.CharData) {
	if c.skipDepth > 0 || c.templateDepth > 0 {
		return
	}
	if c.text != nil {
		c.text.Content += string(se)
	}
	if c.inTitleText {
		c.tree.Titles[len(c.tree.Titles)-1] += string(se)
	}
	if c.inDescText {
		c.tree.Descriptions[len(c.tree.Descriptions)-1] += string(se)
	}
}

// startElement pushes the element transform and dispatch
// to the element handler.
func (c *treeCursor) startElement(tag string, attrs []xml.Attr) error {
	m := c.current()
	if v := attrValue(attrs, "transform"); v != "" {
		var err error
		m, err = parseTransform(m, v)
		if err != nil {
			return err
		}
	}
	c.frames = append(c.frames, frame{transform: m})

	df, ok := drawFuncs[tag]
	if !ok {
		return c.handleError("Cannot process svg element " + tag)
	}
	return df(c, attrs)
}

func (c *treeCursor) endElement() {
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	if top.group {
		c.groups = c.groups[:len(c.groups)-1]
	}
	if top.text {
		c.text = nil
	}
	c.inTitleText, c.inDescText = false, false
}

// current returns the absolute transform of the innermost element
func (c *treeCursor) current() svgpath.Matrix2D {
	return c.frames[len(c.frames)-1].transform
}

func (c *treeCursor) parent() *Group {
	return c.groups[len(c.groups)-1]
}

// openGroup adds a group to the current parent, which
// will receive the next nodes until the element is closed.
func (c *treeCursor) openGroup(id string) *Group {
	g := &Group{ID: id, Transform: c.current()}
	c.parent().Append(g)
	c.groups = append(c.groups, g)
	c.frames[len(c.frames)-1].group = true
	return g
}

// addPath registers a path, expressed in the current
// element coordinates. Empty paths are ignored.
func (c *treeCursor) addPath(attrs []xml.Attr, p svgpath.Path) {
	if len(p) == 0 {
		return
	}
	m := c.current()
	bbox, ok := p.BoundingBox(m)
	if !ok {
		return
	}
	c.parent().Append(&Path{
		ID:             attrValue(attrs, "id"),
		Data:           p,
		AbsTransform:   m,
		AbsBoundingBox: bbox,
	})
}
