package cfonb

import (
	"strings"

	"github.com/cleared-dev/cfonb/internal/model"
)

// Recognizer decodes one kind of record.
type Recognizer interface {
	// Recognizes reports whether the line holds this kind of record.
	Recognizes(line string) bool
	// Decode converts the line, honouring the strict field policy.
	Decode(line string, strict bool) (model.Element, error)
}

type decodeFunc func(line string, strict bool) (model.Element, error)

// recordType recognizes a record by the code in its first columns.
type recordType struct {
	code   string
	decode decodeFunc
}

func (r recordType) Recognizes(line string) bool { return strings.HasPrefix(line, r.code) }

func (r recordType) Decode(line string, strict bool) (model.Element, error) {
	return r.decode(line, strict)
}

// blankLine recognizes empty and whitespace-only lines.
type blankLine struct{}

func (blankLine) Recognizes(line string) bool { return strings.TrimSpace(line) == "" }

func (blankLine) Decode(string, bool) (model.Element, error) { return model.Noop{}, nil }

// Dispatcher hands each line to the first recognizer accepting it.
// It is immutable once built and safe for concurrent use.
type Dispatcher struct {
	recognizers []Recognizer
}

// NewDispatcher creates a dispatcher trying recognizers in the given order.
func NewDispatcher(recognizers ...Recognizer) *Dispatcher {
	return &Dispatcher{recognizers: append([]Recognizer(nil), recognizers...)}
}

// Dispatch decodes a single physical line.
func (d *Dispatcher) Dispatch(line string, strict bool) (model.Element, error) {
	for _, r := range d.recognizers {
		if r.Recognizes(line) {
			return r.Decode(line, strict)
		}
	}
	return nil, &UnsupportedLineError{Line: line}
}

func newStatementDispatcher() *Dispatcher {
	return NewDispatcher(
		recordType{code: "01", decode: decodeBalance(model.BalanceOld)},
		recordType{code: "04", decode: decodeOperation},
		recordType{code: "05", decode: decodeOperationDetail},
		recordType{code: "07", decode: decodeBalance(model.BalanceNew)},
		blankLine{},
	)
}

func newTransferDispatcher() *Dispatcher {
	return NewDispatcher(
		recordType{code: "31", decode: decodeHeader},
		recordType{code: "34", decode: decodeTransaction},
		recordType{code: "39", decode: decodeTotal},
		blankLine{},
	)
}
