// Package export encodes decoded CFONB batches for other systems.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cfonb/internal/importer"
	"github.com/cleared-dev/cfonb/internal/model"
)

const dateFormat = "2006-01-02"

// Document is the serialisable form of a batch. Amounts are decimal strings
// at the scale they were decoded with and dates are ISO 8601.
type Document struct {
	Format     string      `json:"format" yaml:"format" msgpack:"format"`
	Statements []Statement `json:"statements,omitempty" yaml:"statements,omitempty" msgpack:"statements,omitempty"`
	Transfers  []Transfer  `json:"transfers,omitempty" yaml:"transfers,omitempty" msgpack:"transfers,omitempty"`
}

// Statement is an exported 120-column statement.
type Statement struct {
	OldBalance *Balance    `json:"old_balance,omitempty" yaml:"old_balance,omitempty" msgpack:"old_balance,omitempty"`
	NewBalance *Balance    `json:"new_balance,omitempty" yaml:"new_balance,omitempty" msgpack:"new_balance,omitempty"`
	Operations []Operation `json:"operations" yaml:"operations" msgpack:"operations"`
}

// Balance is an exported balance.
type Balance struct {
	BankCode      string `json:"bank_code" yaml:"bank_code" msgpack:"bank_code"`
	DeskCode      string `json:"desk_code" yaml:"desk_code" msgpack:"desk_code"`
	CurrencyCode  string `json:"currency_code" yaml:"currency_code" msgpack:"currency_code"`
	AccountNumber string `json:"account_number" yaml:"account_number" msgpack:"account_number"`
	Date          string `json:"date" yaml:"date" msgpack:"date"`
	Amount        string `json:"amount" yaml:"amount" msgpack:"amount"`
}

// Operation is an exported statement operation.
type Operation struct {
	BankCode      string   `json:"bank_code" yaml:"bank_code" msgpack:"bank_code"`
	DeskCode      string   `json:"desk_code" yaml:"desk_code" msgpack:"desk_code"`
	AccountNumber string   `json:"account_number" yaml:"account_number" msgpack:"account_number"`
	Code          string   `json:"code" yaml:"code" msgpack:"code"`
	Date          string   `json:"date" yaml:"date" msgpack:"date"`
	ValueDate     string   `json:"value_date" yaml:"value_date" msgpack:"value_date"`
	Label         string   `json:"label" yaml:"label" msgpack:"label"`
	Reference     string   `json:"reference" yaml:"reference" msgpack:"reference"`
	Amount        string   `json:"amount" yaml:"amount" msgpack:"amount"`
	InternalCode  string   `json:"internal_code,omitempty" yaml:"internal_code,omitempty" msgpack:"internal_code,omitempty"`
	CurrencyCode  string   `json:"currency_code,omitempty" yaml:"currency_code,omitempty" msgpack:"currency_code,omitempty"`
	RejectCode    string   `json:"reject_code,omitempty" yaml:"reject_code,omitempty" msgpack:"reject_code,omitempty"`
	ExemptCode    string   `json:"exempt_code,omitempty" yaml:"exempt_code,omitempty" msgpack:"exempt_code,omitempty"`
	Details       []Detail `json:"details,omitempty" yaml:"details,omitempty" msgpack:"details,omitempty"`
}

// Detail is an exported operation detail.
type Detail struct {
	Code                   string `json:"code" yaml:"code" msgpack:"code"`
	Date                   string `json:"date" yaml:"date" msgpack:"date"`
	Qualifier              string `json:"qualifier" yaml:"qualifier" msgpack:"qualifier"`
	AdditionalInformations string `json:"additional_informations" yaml:"additional_informations" msgpack:"additional_informations"`
}

// Transfer is an exported 240-column transfer.
type Transfer struct {
	Header       Header        `json:"header" yaml:"header" msgpack:"header"`
	Transactions []Transaction `json:"transactions" yaml:"transactions" msgpack:"transactions"`
	Total        Total         `json:"total" yaml:"total" msgpack:"total"`
}

// Header is an exported transfer header.
type Header struct {
	OperationCode  string `json:"operation_code" yaml:"operation_code" msgpack:"operation_code"`
	SequenceNumber string `json:"sequence_number" yaml:"sequence_number" msgpack:"sequence_number"`
	CreatedAt      string `json:"created_at" yaml:"created_at" msgpack:"created_at"`
	SenderName     string `json:"sender_name" yaml:"sender_name" msgpack:"sender_name"`
	BankCode       string `json:"bank_code" yaml:"bank_code" msgpack:"bank_code"`
	DeskCode       string `json:"desk_code" yaml:"desk_code" msgpack:"desk_code"`
	AccountNumber  string `json:"account_number" yaml:"account_number" msgpack:"account_number"`
	CurrencyCode   string `json:"currency_code,omitempty" yaml:"currency_code,omitempty" msgpack:"currency_code,omitempty"`
	Reference      string `json:"reference" yaml:"reference" msgpack:"reference"`
	SettlementDate string `json:"settlement_date,omitempty" yaml:"settlement_date,omitempty" msgpack:"settlement_date,omitempty"`
}

// Transaction is an exported transfer transaction.
type Transaction struct {
	Code             string `json:"code" yaml:"code" msgpack:"code"`
	SequenceNumber   string `json:"sequence_number" yaml:"sequence_number" msgpack:"sequence_number"`
	Date             string `json:"date" yaml:"date" msgpack:"date"`
	ValueDate        string `json:"value_date" yaml:"value_date" msgpack:"value_date"`
	CounterpartyName string `json:"counterparty_name" yaml:"counterparty_name" msgpack:"counterparty_name"`
	BankCode         string `json:"bank_code" yaml:"bank_code" msgpack:"bank_code"`
	DeskCode         string `json:"desk_code" yaml:"desk_code" msgpack:"desk_code"`
	AccountNumber    string `json:"account_number" yaml:"account_number" msgpack:"account_number"`
	Label            string `json:"label" yaml:"label" msgpack:"label"`
	Reference        string `json:"reference" yaml:"reference" msgpack:"reference"`
	Amount           string `json:"amount" yaml:"amount" msgpack:"amount"`
	InternalCode     string `json:"internal_code,omitempty" yaml:"internal_code,omitempty" msgpack:"internal_code,omitempty"`
	CurrencyCode     string `json:"currency_code,omitempty" yaml:"currency_code,omitempty" msgpack:"currency_code,omitempty"`
	RejectCode       string `json:"reject_code,omitempty" yaml:"reject_code,omitempty" msgpack:"reject_code,omitempty"`
	ExemptCode       string `json:"exempt_code,omitempty" yaml:"exempt_code,omitempty" msgpack:"exempt_code,omitempty"`
}

// Total is an exported transfer total.
type Total struct {
	OperationCode    string `json:"operation_code" yaml:"operation_code" msgpack:"operation_code"`
	SequenceNumber   string `json:"sequence_number" yaml:"sequence_number" msgpack:"sequence_number"`
	Date             string `json:"date" yaml:"date" msgpack:"date"`
	TransactionCount int    `json:"transaction_count" yaml:"transaction_count" msgpack:"transaction_count"`
	Amount           string `json:"amount" yaml:"amount" msgpack:"amount"`
}

// NewDocument converts a batch to its serialisable form.
func NewDocument(b *importer.Batch) *Document {
	doc := &Document{Format: b.Format}
	for _, st := range b.Statements {
		doc.Statements = append(doc.Statements, newStatement(st))
	}
	for _, tr := range b.Transfers {
		doc.Transfers = append(doc.Transfers, newTransfer(tr))
	}
	return doc
}

func newStatement(st *model.Statement) Statement {
	out := Statement{Operations: make([]Operation, 0, len(st.Operations))}
	if b, err := st.OldBalance(); err == nil {
		out.OldBalance = newBalance(b)
	}
	if b, err := st.NewBalance(); err == nil {
		out.NewBalance = newBalance(b)
	}
	for _, op := range st.Operations {
		o := Operation{
			BankCode:      op.BankCode,
			DeskCode:      op.DeskCode,
			AccountNumber: op.AccountNumber,
			Code:          op.Code,
			Date:          formatDate(op.Date),
			ValueDate:     formatDate(op.ValueDate),
			Label:         op.Label,
			Reference:     op.Reference,
			Amount:        formatAmount(op.Amount),
			InternalCode:  deref(op.InternalCode),
			CurrencyCode:  deref(op.CurrencyCode),
			RejectCode:    deref(op.RejectCode),
			ExemptCode:    deref(op.ExemptCode),
		}
		for _, d := range op.Details {
			o.Details = append(o.Details, Detail{
				Code:                   d.Code,
				Date:                   formatDate(d.Date),
				Qualifier:              d.Qualifier,
				AdditionalInformations: d.AdditionalInformations,
			})
		}
		out.Operations = append(out.Operations, o)
	}
	return out
}

func newBalance(b *model.Balance) *Balance {
	return &Balance{
		BankCode:      b.BankCode,
		DeskCode:      b.DeskCode,
		CurrencyCode:  b.CurrencyCode,
		AccountNumber: b.AccountNumber,
		Date:          formatDate(b.Date),
		Amount:        formatAmount(b.Amount),
	}
}

func newTransfer(tr *model.Transfer) Transfer {
	out := Transfer{Transactions: make([]Transaction, 0, len(tr.Transactions))}
	if h := tr.Header; h != nil {
		out.Header = Header{
			OperationCode:  h.OperationCode,
			SequenceNumber: h.SequenceNumber,
			CreatedAt:      formatDate(h.CreatedAt),
			SenderName:     h.SenderName,
			BankCode:       h.BankCode,
			DeskCode:       h.DeskCode,
			AccountNumber:  h.AccountNumber,
			CurrencyCode:   deref(h.CurrencyCode),
			Reference:      h.Reference,
		}
		if h.SettlementDate != nil {
			out.Header.SettlementDate = formatDate(*h.SettlementDate)
		}
	}
	for _, tx := range tr.Transactions {
		out.Transactions = append(out.Transactions, Transaction{
			Code:             tx.Code,
			SequenceNumber:   tx.SequenceNumber,
			Date:             formatDate(tx.Date),
			ValueDate:        formatDate(tx.ValueDate),
			CounterpartyName: tx.CounterpartyName,
			BankCode:         tx.BankCode,
			DeskCode:         tx.DeskCode,
			AccountNumber:    tx.AccountNumber,
			Label:            tx.Label,
			Reference:        tx.Reference,
			Amount:           formatAmount(tx.Amount),
			InternalCode:     deref(tx.InternalCode),
			CurrencyCode:     deref(tx.CurrencyCode),
			RejectCode:       deref(tx.RejectCode),
			ExemptCode:       deref(tx.ExemptCode),
		})
	}
	if t := tr.Total; t != nil {
		out.Total = Total{
			OperationCode:    t.OperationCode,
			SequenceNumber:   t.SequenceNumber,
			Date:             formatDate(t.Date),
			TransactionCount: t.TransactionCount,
			Amount:           formatAmount(t.Amount),
		}
	}
	return out
}

func formatDate(t time.Time) string { return t.Format(dateFormat) }

// formatAmount keeps the decoded scale, so 4480.50 stays "4480.50" and
// 123.455 is not rounded.
func formatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
