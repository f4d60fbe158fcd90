package cfonb

import "fmt"

// UnsupportedLineError is returned when no recognizer accepts a line.
type UnsupportedLineError struct {
	Line string
}

func (e *UnsupportedLineError) Error() string {
	return fmt.Sprintf("unable to find a parser for the line :\n\"%s\"", e.Line)
}

// FieldDecodeError is returned when a column does not hold a value of the
// expected shape.
type FieldDecodeError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldDecodeError) Error() string {
	return fmt.Sprintf("field %s: invalid value %q: %s", e.Field, e.Value, e.Reason)
}

// SequenceError is returned when a record arrives where the file structure
// does not allow it, for example an operation before any opening record.
type SequenceError struct {
	Record string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("unable to attach %s: %s", e.Record, e.Reason)
}
