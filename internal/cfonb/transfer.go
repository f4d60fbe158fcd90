package cfonb

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/cfonb/internal/model"
)

// TransferLineLength is the width of a 240-column transfer record.
const TransferLineLength = 240

// TransferReader decodes 240-column transfer files.
type TransferReader struct {
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// NewTransferReader creates a reader for 240-column files.
func NewTransferReader(log zerolog.Logger) *TransferReader {
	return &TransferReader{
		dispatcher: newTransferDispatcher(),
		log:        log.With().Str("layout", "cfonb240").Logger(),
	}
}

// Parse decodes content into transfers in the order of their totals.
//
// A header opened while another transfer is still open replaces it. A
// transfer missing its total at the end of the content is not returned.
func (r *TransferReader) Parse(content string, strict bool) ([]*model.Transfer, error) {
	var seq sequence[model.Transfer]

	for i, line := range SplitLines(content, TransferLineLength) {
		el, err := r.dispatcher.Dispatch(line, strict)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := r.apply(&seq, el, i+1); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	if t := seq.current(); t != nil {
		r.log.Debug().Str("sequence", t.Header.SequenceNumber).
			Int("transactions", len(t.Transactions)).Msg("dropping transfer without total")
	}
	return seq.result(), nil
}

func (r *TransferReader) apply(seq *sequence[model.Transfer], el model.Element, lineNo int) error {
	switch e := el.(type) {
	case model.Noop:
		return nil

	case *model.Header:
		if prev := seq.start(&model.Transfer{Header: e}); prev != nil {
			r.log.Warn().Int("line", lineNo).Str("sequence", prev.Header.SequenceNumber).
				Msg("header while a transfer is open, discarding it")
		}
		return nil

	case *model.Transaction:
		t := seq.current()
		if t == nil {
			return &SequenceError{
				Record: "transaction " + e.SequenceNumber,
				Reason: "no open transfer",
			}
		}
		t.AddTransaction(e)
		return nil

	case *model.Total:
		t := seq.current()
		if t == nil {
			return &SequenceError{
				Record: "total " + e.SequenceNumber,
				Reason: "no open transfer",
			}
		}
		t.Total = e
		seq.close()
		r.log.Debug().Int("line", lineNo).Str("sequence", t.Header.SequenceNumber).
			Int("transactions", len(t.Transactions)).Msg("transfer closed")
		return nil
	}

	return &SequenceError{Record: fmt.Sprintf("%T", el), Reason: "not a transfer record"}
}
