package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/cfonb/internal/importer"
)

// CSVHeader is the header row written by WriteOperationsCSV.
const CSVHeader = "aggregate,bank_code,desk_code,account_number,code,date,value_date,label,reference,amount,details"

const (
	numFields    = 11
	colAggregate = 0
	colBank      = 1
	colDesk      = 2
	colAccount   = 3
	colCode      = 4
	colDate      = 5
	colValueDate = 6
	colLabel     = 7
	colRef       = 8
	colAmount    = 9
	colDetails   = 10
)

// WriteOperationsCSV flattens the operations of statements, or the transactions
// of transfers, into one CSV row each. The aggregate column is the 1-based
// index of the statement or transfer. Detail lines are joined with "; ".
func WriteOperationsCSV(w io.Writer, b *importer.Batch) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rowNum := 1
	for i, st := range b.Statements {
		for _, op := range st.Operations {
			row := make([]string, numFields)
			row[colAggregate] = strconv.Itoa(i + 1)
			row[colBank] = op.BankCode
			row[colDesk] = op.DeskCode
			row[colAccount] = op.AccountNumber
			row[colCode] = op.Code
			row[colDate] = formatDate(op.Date)
			row[colValueDate] = formatDate(op.ValueDate)
			row[colLabel] = op.Label
			row[colRef] = op.Reference
			row[colAmount] = formatAmount(op.Amount)

			details := make([]string, 0, len(op.Details))
			for _, d := range op.Details {
				details = append(details, d.AdditionalInformations)
			}
			row[colDetails] = strings.Join(details, "; ")

			rowNum++
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row %d: %w", rowNum, err)
			}
		}
	}

	for i, tr := range b.Transfers {
		for _, tx := range tr.Transactions {
			row := make([]string, numFields)
			row[colAggregate] = strconv.Itoa(i + 1)
			row[colBank] = tx.BankCode
			row[colDesk] = tx.DeskCode
			row[colAccount] = tx.AccountNumber
			row[colCode] = tx.Code
			row[colDate] = formatDate(tx.Date)
			row[colValueDate] = formatDate(tx.ValueDate)
			row[colLabel] = tx.Label
			row[colRef] = tx.Reference
			row[colAmount] = formatAmount(tx.Amount)
			row[colDetails] = tx.CounterpartyName

			rowNum++
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row %d: %w", rowNum, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
