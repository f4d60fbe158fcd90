package cfonb

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// row places each value at its 1-indexed start column and pads to width.
func row(width int, cols map[int]string) string {
	b := []byte(strings.Repeat(" ", width))
	for start, v := range cols {
		copy(b[start-1:], v)
	}
	return string(b)
}

func oldBalance(account, date, amount string) string {
	return row(StatementLineLength, map[int]string{
		1: "01", 3: "20041", 12: "01005", 17: "EUR", 20: "2", 22: account, 35: date, 91: amount,
	})
}

func newBalance(account, date, amount string) string {
	return row(StatementLineLength, map[int]string{
		1: "07", 3: "20041", 12: "01005", 17: "EUR", 20: "2", 22: account, 35: date, 91: amount,
	})
}

func operation(account, label, amount, reference string) string {
	return row(StatementLineLength, map[int]string{
		1: "04", 3: "20041", 8: "0532", 12: "01005", 17: "EUR", 20: "2", 22: account,
		33: "B1", 35: "150125", 43: "160125", 49: label, 89: "1", 91: amount, 105: reference,
	})
}

func detail(account, qualifier, info string) string {
	return row(StatementLineLength, map[int]string{
		1: "05", 3: "20041", 8: "0532", 12: "01005", 17: "EUR", 20: "2", 22: account,
		33: "B1", 35: "150125", 46: qualifier, 49: info,
	})
}

func header(sequence, sender string) string {
	return row(TransferLineLength, map[int]string{
		1: "31", 3: "02", 5: sequence, 11: "20250115", 19: sender, 54: "30004", 59: "00815",
		64: "00010234567", 75: "EUR", 78: "BATCH-" + sequence, 94: "20250117",
	})
}

func transaction(sequence, name, sign, amount string) string {
	return row(TransferLineLength, map[int]string{
		1: "34", 3: "02", 5: sequence, 11: "20250115", 19: "20250117", 27: name, 62: "10107",
		67: "00175", 72: "00020345678", 87: "EUR", 93: "INVOICE " + sequence, 124: "REF" + sequence,
		140: sign, 141: amount,
	})
}

func total(sequence, count, sign, amount string) string {
	return row(TransferLineLength, map[int]string{
		1: "39", 3: "02", 5: sequence, 11: "20250115", 19: count, 25: sign, 26: amount,
	})
}

func lines(ls ...string) string { return strings.Join(ls, "\n") }

func newTestStatementReader(t *testing.T) *StatementReader {
	t.Helper()
	return NewStatementReader(zerolog.Nop())
}

func newTestTransferReader(t *testing.T) *TransferReader {
	t.Helper()
	return NewTransferReader(zerolog.Nop())
}
