package annotation

import "fmt"

// ParseError reports a malformed annotation line. Loading skips the line
// and continues; it never aborts the whole file.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed annotation line %q: %s", e.Line, e.Reason)
}

// IndexError reports an operation that referenced an out-of-range box
// index. The operation performs no mutation.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("box index %d out of range (have %d boxes)", e.Index, e.Len)
}

// DuplicateNameError reports a class name that already maps to a different
// id. The registry is left unchanged.
type DuplicateNameError struct {
	Name       string
	ExistingID int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("class name %q already registered under id %d", e.Name, e.ExistingID)
}
