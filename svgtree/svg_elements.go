package svgtree

import (
	"encoding/xml"
	"errors"
	"math"
	"strings"

	"github.com/benoitkugler/svgmesh/svgpath"
	"seehuhn.de/go/geom/vec"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *treeCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"a":        gF,
	"switch":   gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
	"image":    imageF,
	"text":     textF,
	"tspan":    tspanF,
	"desc":     descF,
	"defs":     gF, // defs and symbol are only started by use
	"symbol":   gF,
	"title":    titleF,
}

func svgF(c *treeCursor, attrs []xml.Attr) error {
	if c.rootDone { // nested viewports are kept as translated groups
		var x, y float64
		var err error
		for _, attr := range attrs {
			switch attr.Name.Local {
			case "x":
				x, err = c.parseUnit(attr.Value, widthPercentage)
			case "y":
				y, err = c.parseUnit(attr.Value, heightPercentage)
			}
			if err != nil {
				return err
			}
		}
		top := &c.frames[len(c.frames)-1]
		top.transform = top.transform.Translate(x, y)
		c.openGroup(attrValue(attrs, "id"))
		return nil
	}
	c.rootDone = true

	var (
		viewBox                      svgpath.Bounds
		hasViewBox                   bool
		widthAttr, heightAttr, ratio string
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			points, err := svgpath.ParseNumbers(attr.Value)
			if err != nil {
				return err
			}
			if len(points) != 4 {
				return errParamMismatch
			}
			viewBox = svgpath.Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
			hasViewBox = true
			if viewBox.IsEmpty() {
				return errInvalidSize
			}
		case "width":
			widthAttr = attr.Value
		case "height":
			heightAttr = attr.Value
		case "preserveAspectRatio":
			ratio = attr.Value
		}
	}
	// percentages are resolved against the viewBox, if any
	c.tree.ViewBox = viewBox
	if !hasViewBox {
		c.tree.ViewBox = svgpath.Bounds{W: 100, H: 100}
	}
	width, err := c.parseLength(widthAttr, widthPercentage)
	if err != nil {
		return err
	}
	height, err := c.parseLength(heightAttr, heightPercentage)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return errInvalidSize
	}
	c.tree.Width, c.tree.Height = width, height

	top := &c.frames[len(c.frames)-1]
	if hasViewBox {
		top.transform = top.transform.Mult(viewBoxTransform(viewBox, width, height, ratio))
	} else {
		c.tree.ViewBox = svgpath.Bounds{W: width, H: height}
	}
	c.tree.Root.ID = attrValue(attrs, "id")
	c.tree.Root.Transform = top.transform
	return nil
}

// parseLength resolves the width or height of the root element,
// defaulting to 100%.
func (c *treeCursor) parseLength(v string, asPerc percentageReference) (float64, error) {
	if strings.TrimSpace(v) == "" {
		v = "100%"
	}
	return c.parseUnit(v, asPerc)
}

// viewBoxTransform maps the viewBox onto a (width, height) viewport,
// following the preserveAspectRatio attribute (default: xMidYMid meet).
func viewBoxTransform(vb svgpath.Bounds, width, height float64, ratio string) svgpath.Matrix2D {
	sx, sy := width/vb.W, height/vb.H
	ratio = strings.TrimSpace(ratio)
	if ratio == "none" {
		return svgpath.Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
	}
	s := math.Min(sx, sy)
	if strings.Contains(ratio, "slice") {
		s = math.Max(sx, sy)
	}
	tx, ty := (width-vb.W*s)/2, (height-vb.H*s)/2
	if strings.Contains(ratio, "xMin") {
		tx = 0
	} else if strings.Contains(ratio, "xMax") {
		tx = width - vb.W*s
	}
	if strings.Contains(ratio, "YMin") {
		ty = 0
	} else if strings.Contains(ratio, "YMax") {
		ty = height - vb.H*s
	}
	return svgpath.Identity.Translate(tx, ty).Scale(s, s).Translate(-vb.X, -vb.Y)
}

func gF(c *treeCursor, attrs []xml.Attr) error {
	c.openGroup(attrValue(attrs, "id"))
	return nil
}

func rectF(c *treeCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return nil
	}
	var p svgpath.Path
	p.AddRoundRect(x, y, x+w, y+h, rx, ry)
	c.addPath(attrs, p)
	return nil
}

func circleF(c *treeCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	var p svgpath.Path
	p.AddEllipse(cx, cy, rx, ry)
	c.addPath(attrs, p)
	return nil
}

func lineF(c *treeCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	var p svgpath.Path
	p.Start(vec.Vec2{X: x1, Y: y1})
	p.Line(vec.Vec2{X: x2, Y: y2})
	c.addPath(attrs, p)
	return nil
}

// readPolyline returns nil for less than two points
func readPolyline(attrs []xml.Attr) (svgpath.Path, error) {
	points, err := svgpath.ParseNumbers(attrValue(attrs, "points"))
	if err != nil {
		return nil, err
	}
	if len(points)%2 != 0 {
		return nil, errors.New("polygon has odd number of points")
	}
	if len(points) < 4 {
		return nil, nil
	}
	var p svgpath.Path
	p.Start(vec.Vec2{X: points[0], Y: points[1]})
	for i := 2; i < len(points)-1; i += 2 {
		p.Line(vec.Vec2{X: points[i], Y: points[i+1]})
	}
	return p, nil
}

func polylineF(c *treeCursor, attrs []xml.Attr) error {
	p, err := readPolyline(attrs)
	if err != nil {
		return err
	}
	c.addPath(attrs, p)
	return nil
}

func polygonF(c *treeCursor, attrs []xml.Attr) error {
	p, err := readPolyline(attrs)
	if err != nil {
		return err
	}
	if len(p) > 0 {
		p.Stop(true)
	}
	c.addPath(attrs, p)
	return nil
}

func pathF(c *treeCursor, attrs []xml.Attr) error {
	p, err := svgpath.ParsePath(attrValue(attrs, "d"))
	if err != nil {
		return err
	}
	c.addPath(attrs, p)
	return nil
}

func imageF(c *treeCursor, attrs []xml.Attr) error {
	img := &Image{ID: attrValue(attrs, "id"), AbsTransform: c.current()}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			img.Href = attr.Value
		case "x":
			img.X, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			img.Y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			img.Width, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			img.Height, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.parent().Append(img)
	return nil
}

func textF(c *treeCursor, attrs []xml.Attr) error {
	text := &Text{ID: attrValue(attrs, "id"), AbsTransform: c.current()}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x", "y":
			// only the first value of a list is kept
			values, err := svgpath.ParseNumbers(attr.Value)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				continue
			}
			if attr.Name.Local == "x" {
				text.X = values[0]
			} else {
				text.Y = values[0]
			}
		}
	}
	c.parent().Append(text)
	c.text = text
	c.frames[len(c.frames)-1].text = true
	return nil
}

// tspan content is collected by the enclosing text
func tspanF(*treeCursor, []xml.Attr) error { return nil }

func descF(c *treeCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.tree.Descriptions = append(c.tree.Descriptions, "")
	return nil
}

func titleF(c *treeCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.tree.Titles = append(c.tree.Titles, "")
	return nil
}

// useF instantiates a definition, as a group translated by (x, y).
func useF(c *treeCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if href == "" {
		return errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID CSS selector is supported")
	}
	start := -1
	for i, def := range c.defs {
		if !def.end && def.ID == href[1:] {
			start = i
			break
		}
	}
	if start == -1 {
		return c.handleError("href ID in use statement was not found: " + href)
	}
	if c.useDepth >= maxUseDepth {
		return errUseDepth
	}

	top := &c.frames[len(c.frames)-1]
	top.transform = top.transform.Translate(x, y)
	c.openGroup(attrValue(attrs, "id"))

	c.useDepth++
	defer func() { c.useDepth-- }()
	depth, hidden := 0, 0 // hidden > 0 inside nested defs or symbol
	for i, def := range c.defs[start:] {
		switch {
		case hidden > 0 && def.end:
			hidden--
		case hidden > 0:
			hidden++
		case i > 0 && !def.end && templates[def.Tag]:
			hidden = 1
		case def.end:
			c.endElement()
			depth--
		default:
			if err := c.startElement(def.Tag, def.Attrs); err != nil {
				return err
			}
			depth++
		}
		if depth == 0 {
			break
		}
	}
	return nil
}
