package vecasset

import "fmt"

// ParseError is returned when the SVG document is invalid.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("could not parse svg: %s", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is returned when the document can't be read.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("could not load asset: %s", e.Err) }

func (e *IOError) Unwrap() error { return e.Err }
