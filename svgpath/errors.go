package svgpath

import "fmt"

// ErrorKind classifies a path-data parse failure.
type ErrorKind uint8

const (
	// UnexpectedToken reports a byte which is neither a known
	// command letter nor the start of a numeric argument.
	UnexpectedToken ErrorKind = iota
	// MalformedNumber reports an unparsable numeric literal.
	MalformedNumber
	// ArityMismatch reports a command whose final argument group
	// has the wrong number of arguments.
	ArityMismatch
	// MissingInitialMoveTo reports path data whose first command
	// is not a moveto.
	MissingInitialMoveTo
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case MalformedNumber:
		return "malformed number"
	case ArityMismatch:
		return "arity mismatch"
	case MissingInitialMoveTo:
		return "missing initial moveto"
	default:
		return "<unknown ErrorKind>"
	}
}

// ParseError is returned by CompilePath on malformed path data.
// Offset is the byte offset of the offending token in the input.
type ParseError struct {
	Kind   ErrorKind
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid path data: %s at offset %d", e.Kind, e.Offset)
}
