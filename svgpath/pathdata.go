package svgpath

import (
	"errors"
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

var errMissingMoveTo = errors.New("path data must start with a move command")

// pathCursor is used while parsing the 'd' attribute of a path.
// It tracks the state needed to resolve relative and smooth commands.
type pathCursor struct {
	data string
	pos  int

	path                        Path
	current, subStart, lastCtrl vec.Vec2
	lastCmd                     byte
}

// ParsePath compiles the content of an SVG 'd' attribute
// into absolute operations.
// Arcs are converted to cubic Bézier curves and
// H, V, S and T commands to their general form.
func ParsePath(d string) (Path, error) {
	c := pathCursor{data: d}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return c.path, nil
}

// ParseNumbers splits a list of numbers separated by
// white space and/or commas, such as a viewBox or a points attribute.
func ParseNumbers(s string) ([]float64, error) {
	c := pathCursor{data: s}
	var out []float64
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return out, nil
		}
		f, err := c.number()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.data) && isSeparator(c.data[c.pos]) {
		c.pos++
	}
}

// hasNumber skips separators and returns true if a number starts
// at the current position.
func (c *pathCursor) hasNumber() bool {
	c.skipSeparators()
	if c.pos >= len(c.data) {
		return false
	}
	b := c.data[c.pos]
	return isDigit(b) || b == '-' || b == '+' || b == '.'
}

// number reads one float, accepting the compact SVG forms
// like "1.5.5" (two numbers) or "1-2" (two numbers).
func (c *pathCursor) number() (float64, error) {
	c.skipSeparators()
	start := c.pos
	if c.pos < len(c.data) && (c.data[c.pos] == '-' || c.data[c.pos] == '+') {
		c.pos++
	}
	digits := 0
	for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
		c.pos++
		digits++
	}
	if c.pos < len(c.data) && c.data[c.pos] == '.' {
		c.pos++
		for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
			c.pos++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("invalid number at offset %d in %q", start, c.data)
	}
	if c.pos < len(c.data) && (c.data[c.pos] == 'e' || c.data[c.pos] == 'E') {
		// only consume the exponent if it is well formed
		save := c.pos
		c.pos++
		if c.pos < len(c.data) && (c.data[c.pos] == '-' || c.data[c.pos] == '+') {
			c.pos++
		}
		if c.pos < len(c.data) && isDigit(c.data[c.pos]) {
			for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
				c.pos++
			}
		} else {
			c.pos = save
		}
	}
	return strconv.ParseFloat(c.data[start:c.pos], 64)
}

// flag reads an arc flag, which may be written without separator.
func (c *pathCursor) flag() (float64, error) {
	c.skipSeparators()
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("invalid arc flag at offset %d in %q", c.pos, c.data)
}

// point reads a coordinate pair, resolved against the current point
// for relative commands.
func (c *pathCursor) point(relative bool) (vec.Vec2, error) {
	x, err := c.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := c.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	p := vec.Vec2{X: x, Y: y}
	if relative {
		p = p.Add(c.current)
	}
	return p, nil
}

// reflectedControl returns the reflection of the last control point
// when the previous command belongs to `kinds`, or the current point.
func (c *pathCursor) reflectedControl(kinds string) vec.Vec2 {
	prev := toUpper(c.lastCmd)
	for i := 0; i < len(kinds); i++ {
		if prev == kinds[i] {
			return c.current.Mul(2).Sub(c.lastCtrl)
		}
	}
	return c.current
}

func toUpper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func (c *pathCursor) compile() error {
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return nil
		}
		cmd := c.data[c.pos]
		if isCommand(cmd) {
			c.pos++
		} else {
			// no command letter: repeat the previous one
			switch c.lastCmd {
			case 0:
				return errMissingMoveTo
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			case 'Z', 'z':
				return fmt.Errorf("unexpected number after close at offset %d in %q", c.pos, c.data)
			default:
				cmd = c.lastCmd
			}
		}
		if c.lastCmd == 0 && toUpper(cmd) != 'M' {
			return errMissingMoveTo
		}
		if err := c.addCommand(cmd); err != nil {
			return err
		}
		c.lastCmd = cmd
	}
}

func (c *pathCursor) addCommand(cmd byte) error {
	relative := 'a' <= cmd && cmd <= 'z'
	switch toUpper(cmd) {
	case 'M':
		p, err := c.point(relative)
		if err != nil {
			return err
		}
		c.path.Start(p)
		c.current, c.subStart = p, p
	case 'L':
		p, err := c.point(relative)
		if err != nil {
			return err
		}
		c.path.Line(p)
		c.current = p
	case 'H':
		x, err := c.number()
		if err != nil {
			return err
		}
		if relative {
			x += c.current.X
		}
		c.current = vec.Vec2{X: x, Y: c.current.Y}
		c.path.Line(c.current)
	case 'V':
		y, err := c.number()
		if err != nil {
			return err
		}
		if relative {
			y += c.current.Y
		}
		c.current = vec.Vec2{X: c.current.X, Y: y}
		c.path.Line(c.current)
	case 'C', 'S':
		var (
			ctrl1 vec.Vec2
			err   error
		)
		if toUpper(cmd) == 'C' {
			if ctrl1, err = c.point(relative); err != nil {
				return err
			}
		} else {
			ctrl1 = c.reflectedControl("CS")
		}
		ctrl2, err := c.point(relative)
		if err != nil {
			return err
		}
		end, err := c.point(relative)
		if err != nil {
			return err
		}
		c.path.CubeBezier(ctrl1, ctrl2, end)
		c.lastCtrl, c.current = ctrl2, end
	case 'Q', 'T':
		var (
			ctrl vec.Vec2
			err  error
		)
		if toUpper(cmd) == 'Q' {
			if ctrl, err = c.point(relative); err != nil {
				return err
			}
		} else {
			ctrl = c.reflectedControl("QT")
		}
		end, err := c.point(relative)
		if err != nil {
			return err
		}
		c.path.QuadBezier(ctrl, end)
		c.lastCtrl, c.current = ctrl, end
	case 'A':
		var args [7]float64
		var err error
		for i := 0; i < 3; i++ {
			if args[i], err = c.number(); err != nil {
				return err
			}
		}
		if args[3], err = c.flag(); err != nil {
			return err
		}
		if args[4], err = c.flag(); err != nil {
			return err
		}
		end, err := c.point(relative)
		if err != nil {
			return err
		}
		args[5], args[6] = end.X, end.Y
		c.path.ArcTo(args, c.current.X, c.current.Y)
		c.current = end
	case 'Z':
		c.path.Stop(true)
		c.current = c.subStart
	}
	return nil
}
