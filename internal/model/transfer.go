package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header opens a 240-column transfer batch (record 31).
type Header struct {
	OperationCode  string
	SequenceNumber string
	CreatedAt      time.Time
	SenderName     string
	BankCode       string
	DeskCode       string
	AccountNumber  string
	CurrencyCode   *string
	Reference      string
	SettlementDate *time.Time
}

// Transaction is one payment instruction (record 34) of a transfer batch.
type Transaction struct {
	Code             string
	SequenceNumber   string
	Date             time.Time
	ValueDate        time.Time
	CounterpartyName string
	BankCode         string
	DeskCode         string
	AccountNumber    string
	InternalCode     *string
	CurrencyCode     *string
	RejectCode       *string
	ExemptCode       *string
	Label            string
	Reference        string
	Amount           decimal.Decimal
}

// Total closes a transfer batch (record 39).
type Total struct {
	OperationCode    string
	SequenceNumber   string
	Date             time.Time
	TransactionCount int
	Amount           decimal.Decimal
}

// Transfer is a batch decoded from a 240-column file.
type Transfer struct {
	Header       *Header
	Transactions []*Transaction
	Total        *Total
}

// AddTransaction appends a transaction in file order.
func (t *Transfer) AddTransaction(tx *Transaction) {
	t.Transactions = append(t.Transactions, tx)
}
