package cfonb

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/cfonb/internal/model"
)

// StatementLineLength is the width of a 120-column statement record.
const StatementLineLength = 120

// StatementReader decodes 120-column statement files.
type StatementReader struct {
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// NewStatementReader creates a reader for 120-column files.
func NewStatementReader(log zerolog.Logger) *StatementReader {
	return &StatementReader{
		dispatcher: newStatementDispatcher(),
		log:        log.With().Str("layout", "cfonb120").Logger(),
	}
}

// Parse decodes content into statements in file order.
//
// A statement opens on an old balance (01) and closes on a new balance (07).
// A statement still open at the end of the content is not returned. Any
// error aborts the call and no statement is returned.
func (r *StatementReader) Parse(content string, strict bool) ([]*model.Statement, error) {
	var seq sequence[model.Statement]

	for i, line := range SplitLines(content, StatementLineLength) {
		el, err := r.dispatcher.Dispatch(line, strict)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := r.apply(&seq, el, i+1); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	if st := seq.current(); st != nil {
		r.log.Debug().Int("operations", len(st.Operations)).Msg("dropping statement without new balance")
	}
	return seq.result(), nil
}

func (r *StatementReader) apply(seq *sequence[model.Statement], el model.Element, lineNo int) error {
	switch e := el.(type) {
	case model.Noop:
		return nil

	case *model.Balance:
		if e.Kind == model.BalanceOld {
			if prev := seq.start(model.NewStatement(e)); prev != nil {
				r.log.Warn().Int("line", lineNo).Int("operations", len(prev.Operations)).
					Msg("old balance while a statement is open, discarding it")
			}
			return nil
		}
		st := seq.current()
		if st == nil {
			return &SequenceError{
				Record: "new balance of account " + e.AccountNumber,
				Reason: "no open statement",
			}
		}
		st.SetNewBalance(e)
		seq.close()
		r.log.Debug().Int("line", lineNo).Str("account", e.AccountNumber).
			Int("operations", len(st.Operations)).Msg("statement closed")
		return nil

	case *model.Operation:
		st := seq.current()
		if st == nil {
			return &SequenceError{
				Record: "operation " + e.Reference,
				Reason: "no open statement",
			}
		}
		st.AddOperation(e)
		return nil

	case *model.OperationDetail:
		st := seq.current()
		if st == nil {
			return &SequenceError{Record: "operation detail", Reason: "no open statement"}
		}
		op := st.LastOperation()
		if op == nil {
			return &SequenceError{Record: "operation detail", Reason: "no preceding operation"}
		}
		op.AddDetail(e)
		return nil
	}

	return &SequenceError{Record: fmt.Sprintf("%T", el), Reason: "not a statement record"}
}
