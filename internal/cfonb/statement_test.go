package cfonb

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cfonb/internal/model"
)

const account = "00012345678"

func sampleStatement() string {
	return lines(
		oldBalance(account, "010125", "0000000010000{"),
		operation(account, "PRLV SEPA EDF", "0000000004512N", "EDF2025010001"),
		detail(account, "LIB", "ECHEANCE JANVIER CONTRAT 123"),
		detail(account, "NPY", "EDF SA"),
		operation(account, "VIR ACME CONSULTING", "0000000035000{", "ACME1042"),
		newBalance(account, "310125", "0000000040487E"),
	)
}

func TestStatementReader_Empty(t *testing.T) {
	r := newTestStatementReader(t)
	for _, content := range []string{"", "\n", "\r\n", "\n\n\n", "   \n   "} {
		got, err := r.Parse(content, true)
		require.NoError(t, err, "content %q", content)
		assert.Empty(t, got, "content %q", content)
	}
}

func TestStatementReader_Statement(t *testing.T) {
	got, err := newTestStatementReader(t).Parse(sampleStatement(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	st := got[0]

	require.True(t, st.HasOldBalance())
	old, err := st.OldBalance()
	require.NoError(t, err)
	assert.Equal(t, model.BalanceOld, old.Kind)
	assert.Equal(t, "20041", old.BankCode)
	assert.Equal(t, "01005", old.DeskCode)
	assert.Equal(t, "EUR", old.CurrencyCode)
	assert.Equal(t, account, old.AccountNumber)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), old.Date)
	assert.Equal(t, "1000.00", old.Amount.StringFixed(2))

	require.True(t, st.HasNewBalance())
	nb, err := st.NewBalance()
	require.NoError(t, err)
	assert.Equal(t, model.BalanceNew, nb.Kind)
	assert.Equal(t, "4048.75", nb.Amount.StringFixed(2))

	require.Len(t, st.Operations, 2)
	op := st.Operations[0]
	assert.Equal(t, "20041", op.BankCode)
	assert.Equal(t, "B1", op.Code)
	assert.Equal(t, "PRLV SEPA EDF", op.Label)
	assert.Equal(t, "EDF2025010001", op.Reference)
	assert.True(t, decimal.RequireFromString("-451.25").Equal(op.Amount))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), op.Date)
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), op.ValueDate)
	require.NotNil(t, op.InternalCode)
	assert.Equal(t, "0532", *op.InternalCode)
	require.NotNil(t, op.CurrencyCode)
	assert.Equal(t, "EUR", *op.CurrencyCode)
	assert.Nil(t, op.RejectCode)
	require.NotNil(t, op.ExemptCode)
	assert.Equal(t, "1", *op.ExemptCode)

	require.Len(t, op.Details, 2)
	assert.Equal(t, "LIB", op.Details[0].Qualifier)
	assert.Equal(t, "ECHEANCE JANVIER CONTRAT 123", op.Details[0].AdditionalInformations)
	assert.Equal(t, "NPY", op.Details[1].Qualifier)
	assert.Equal(t, "EDF SA", op.Details[1].AdditionalInformations)

	assert.Equal(t, "ACME1042", st.Operations[1].Reference)
	assert.Equal(t, "3500.00", st.Operations[1].Amount.StringFixed(2))
	assert.Empty(t, st.Operations[1].Details)
}

func TestStatementReader_BlobEqualsLines(t *testing.T) {
	r := newTestStatementReader(t)
	want, err := r.Parse(sampleStatement(), true)
	require.NoError(t, err)

	got, err := r.Parse(strings.ReplaceAll(sampleStatement(), "\n", ""), true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStatementReader_SurroundingNewlines(t *testing.T) {
	r := newTestStatementReader(t)
	want, err := r.Parse(sampleStatement(), true)
	require.NoError(t, err)

	for _, wrap := range []string{"\n", "\r\n", "\n\n\n", "\r\n\r\n"} {
		content := wrap + strings.ReplaceAll(sampleStatement(), "\n", "\r\n") + wrap
		got, err := r.Parse(content, true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStatementReader_MultipleStatements(t *testing.T) {
	content := lines(
		sampleStatement(),
		"",
		oldBalance("00098765432", "010125", "0000000000000{"),
		operation("00098765432", "CB CARREFOUR", "0000000002390R", "CB0001"),
		newBalance("00098765432", "310125", "0000000002390R"),
	)
	got, err := newTestStatementReader(t).Parse(content, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Operations, 2)
	require.Len(t, got[1].Operations, 1)
	assert.Equal(t, "-239.09", got[1].Operations[0].Amount.StringFixed(2))
}

func TestStatementReader_UnclosedStatementDropped(t *testing.T) {
	content := lines(
		sampleStatement(),
		oldBalance("00098765432", "010125", "0000000000000{"),
		operation("00098765432", "CB CARREFOUR", "0000000002390R", "CB0001"),
	)
	got, err := newTestStatementReader(t).Parse(content, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	nb, err := got[0].NewBalance()
	require.NoError(t, err)
	assert.Equal(t, account, nb.AccountNumber)
}

func TestStatementReader_OldBalanceWhileOpenReplacesStatement(t *testing.T) {
	content := lines(
		oldBalance(account, "010125", "0000000100000{"),
		operation(account, "DISCARDED", "0000000000100{", "GONE"),
		oldBalance(account, "020125", "0000000200000{"),
		operation(account, "KEPT", "0000000000200{", "KEPT"),
		newBalance(account, "310125", "0000000200200{"),
	)
	got, err := newTestStatementReader(t).Parse(content, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Operations, 1)
	assert.Equal(t, "KEPT", got[0].Operations[0].Label)
	old, err := got[0].OldBalance()
	require.NoError(t, err)
	assert.Equal(t, 2, old.Date.Day())
}

func TestStatementReader_OperationWithoutStatement(t *testing.T) {
	_, err := newTestStatementReader(t).Parse(operation(account, "ORPHAN", "0000000000100{", "X"), true)
	var se *SequenceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "no open statement")
}

func TestStatementReader_DetailWithoutOperation(t *testing.T) {
	content := lines(
		oldBalance(account, "010125", "0000000100000{"),
		detail(account, "LIB", "NOTHING TO ATTACH TO"),
	)
	_, err := newTestStatementReader(t).Parse(content, true)
	var se *SequenceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "operation detail", se.Record)
	assert.Contains(t, err.Error(), "line 2")
}

func TestStatementReader_DetailWithoutStatement(t *testing.T) {
	_, err := newTestStatementReader(t).Parse(detail(account, "LIB", "X"), true)
	var se *SequenceError
	assert.True(t, errors.As(err, &se))
}

func TestStatementReader_NewBalanceWithoutStatement(t *testing.T) {
	_, err := newTestStatementReader(t).Parse(newBalance(account, "310125", "0000000100000{"), true)
	var se *SequenceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Record, account)
}

func TestStatementReader_ErrorDiscardsCompletedStatements(t *testing.T) {
	content := lines(sampleStatement(), "abc ")
	got, err := newTestStatementReader(t).Parse(content, true)
	assert.Nil(t, got)
	var ue *UnsupportedLineError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "abc ", ue.Line)
	assert.Contains(t, err.Error(), "\"abc \"")
}

func TestStatementReader_UnsupportedLine(t *testing.T) {
	_, err := newTestStatementReader(t).Parse("abc ", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to find a parser for the line :\n\"abc \"")
}

func TestStatementReader_StrictAndLenient(t *testing.T) {
	line := []byte(operation(account, "PRLV SEPA EDF", "0000000004512N", "EDF2025010001"))
	copy(line[16:19], "E1R") // currency, columns 17-19
	content := lines(
		oldBalance(account, "010125", "0000000100000{"),
		string(line),
		newBalance(account, "310125", "0000000095487J"),
	)

	_, err := newTestStatementReader(t).Parse(content, true)
	var fe *FieldDecodeError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "currencyCode", fe.Field)
	assert.Equal(t, "E1R", fe.Value)
	assert.Contains(t, err.Error(), "line 2")

	got, err := newTestStatementReader(t).Parse(content, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Operations[0].CurrencyCode)
}

func TestStatementReader_LenientStillRejectsRequiredFields(t *testing.T) {
	line := []byte(operation(account, "PRLV SEPA EDF", "0000000004512N", "EDF2025010001"))
	copy(line[2:7], "2OO41") // bank code, columns 3-7
	content := lines(oldBalance(account, "010125", "0000000100000{"), string(line))

	_, err := newTestStatementReader(t).Parse(content, false)
	var fe *FieldDecodeError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "bankCode", fe.Field)
	assert.Equal(t, "2OO41", fe.Value)
}
