package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/cfonb/internal/importer"
	"github.com/cleared-dev/cfonb/internal/model"
)

func loadBatch(t *testing.T, path string, p importer.Parser) *importer.Batch {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	batch, err := p.Parse(f, true)
	require.NoError(t, err)
	return batch
}

func statementBatch(t *testing.T) *importer.Batch {
	return loadBatch(t, "../../testdata/statement.120", importer.NewStatementParser(zerolog.Nop()))
}

func transferBatch(t *testing.T) *importer.Batch {
	return loadBatch(t, "../../testdata/transfer.240", importer.NewTransferParser(zerolog.Nop()))
}

func TestNewDocument_Statement(t *testing.T) {
	doc := NewDocument(statementBatch(t))
	assert.Equal(t, importer.FormatStatement, doc.Format)
	require.Len(t, doc.Statements, 2)
	assert.Empty(t, doc.Transfers)

	st := doc.Statements[0]
	require.NotNil(t, st.OldBalance)
	assert.Equal(t, "1000.00", st.OldBalance.Amount)
	assert.Equal(t, "2025-01-01", st.OldBalance.Date)
	require.NotNil(t, st.NewBalance)
	assert.Equal(t, "4256.91", st.NewBalance.Amount)

	op := st.Operations[0]
	assert.Equal(t, "B1", op.Code)
	assert.Equal(t, "2025-01-03", op.Date)
	assert.Equal(t, "-4.00", op.Amount)
	assert.Equal(t, "GH20250103", op.Reference)
	require.Len(t, op.Details, 1)
	assert.Equal(t, "LIB", op.Details[0].Qualifier)
}

func TestNewDocument_Transfer(t *testing.T) {
	doc := NewDocument(transferBatch(t))
	require.Len(t, doc.Transfers, 2)

	tr := doc.Transfers[0]
	assert.Equal(t, "PAYROLL-2025-01", tr.Header.Reference)
	assert.Equal(t, "2025-01-15", tr.Header.CreatedAt)
	assert.Equal(t, "2025-01-17", tr.Header.SettlementDate)
	assert.Equal(t, "EUR", tr.Header.CurrencyCode)
	require.Len(t, tr.Transactions, 2)
	assert.Equal(t, "2500.00", tr.Transactions[0].Amount)
	assert.Equal(t, "DUPONT JEAN", tr.Transactions[0].CounterpartyName)
	assert.Equal(t, 2, tr.Total.TransactionCount)
	assert.Equal(t, "02", tr.Total.OperationCode)
	assert.Equal(t, "4480.50", tr.Total.Amount)
}

func TestNewDocument_TransactionCodes(t *testing.T) {
	internal, exempt := "0532", "1"
	tr := &model.Transfer{
		Header: &model.Header{OperationCode: "02"},
		Total:  &model.Total{OperationCode: "02", Amount: decimal.New(1000, -2)},
	}
	tr.AddTransaction(&model.Transaction{
		Code:         "02",
		InternalCode: &internal,
		ExemptCode:   &exempt,
		Amount:       decimal.New(1000, -2),
	})

	doc := NewDocument(&importer.Batch{Format: importer.FormatTransfer, Transfers: []*model.Transfer{tr}})
	require.Len(t, doc.Transfers[0].Transactions, 1)
	tx := doc.Transfers[0].Transactions[0]
	assert.Equal(t, "0532", tx.InternalCode)
	assert.Equal(t, "1", tx.ExemptCode)
	assert.Empty(t, tx.RejectCode)
	assert.Equal(t, "10.00", tx.Amount)
	assert.Equal(t, "02", doc.Transfers[0].Total.OperationCode)
}

// setColumns overwrites 1-indexed columns of a fixed-width line.
func setColumns(line string, start int, value string) string {
	return line[:start-1] + value + line[start-1+len(value):]
}

func TestWrite_KeepsDecodedScale(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.120")
	require.NoError(t, err)
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var content []string
	for _, l := range []string{lines[0], lines[3], lines[7]} {
		l = setColumns(l, 20, "3")
		l = setColumns(l, 91, "0000000012345E")
		content = append(content, l)
	}

	batch, err := importer.NewStatementParser(zerolog.Nop()).Parse(strings.NewReader(strings.Join(content, "\n")), true)
	require.NoError(t, err)
	require.Len(t, batch.Statements, 1)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, batch))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	st := doc.Statements[0]
	assert.Equal(t, "123.455", st.OldBalance.Amount)
	assert.Equal(t, "123.455", st.NewBalance.Amount)
	require.Len(t, st.Operations, 1)
	assert.Equal(t, "123.455", st.Operations[0].Amount)
	assert.NotContains(t, buf.String(), "123.46")

	buf.Reset()
	require.NoError(t, WriteOperationsCSV(&buf, batch))
	assert.Contains(t, buf.String(), ",123.455,")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", statementBatch(t)))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, NewDocument(statementBatch(t)), &doc)
	assert.Contains(t, buf.String(), `"old_balance"`)
	assert.NotContains(t, buf.String(), `"transfers"`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "YAML", transferBatch(t)))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "cfonb240", doc.Format)
	require.Len(t, doc.Transfers, 2)
	assert.Equal(t, "SUPPLY-2025-01", doc.Transfers[1].Header.Reference)
}

func TestWrite_Msgpack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "msgpack", transferBatch(t)))

	var doc Document
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "-123.45", doc.Transfers[1].Transactions[0].Amount)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", statementBatch(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestWriteOperationsCSV_Statements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOperationsCSV(&buf, statementBatch(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, CSVHeader, join(records[0]))

	third := records[3]
	assert.Equal(t, "1", third[colAggregate])
	assert.Equal(t, "-239.09", third[colAmount])
	assert.Equal(t, "CARREFOUR MARKET PARIS; CARTE 4970XXXXXXXX1234", third[colDetails])

	last := records[4]
	assert.Equal(t, "2", last[colAggregate])
	assert.Equal(t, "00098765432", last[colAccount])
	assert.Equal(t, "-12.00", last[colAmount])
}

func TestWriteOperationsCSV_Transfers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, transferBatch(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "SAL-0001", records[1][colRef])
	assert.Equal(t, "DUPONT JEAN", records[1][colDetails])
	assert.Equal(t, "2", records[3][colAggregate])
}

func join(fields []string) string {
	var buf bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(f)
	}
	return buf.String()
}
