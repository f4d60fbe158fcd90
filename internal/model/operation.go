package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is one movement (record 04) of a 120-column statement.
type Operation struct {
	BankCode      string
	DeskCode      string
	AccountNumber string
	Code          string // interbank operation code
	Date          time.Time
	ValueDate     time.Time
	Label         string
	Reference     string
	Amount        decimal.Decimal // negative = debit
	InternalCode  *string
	CurrencyCode  *string
	RejectCode    *string
	ExemptCode    *string
	Details       []*OperationDetail
}

// AddDetail appends a complementary record to the operation.
func (o *Operation) AddDetail(d *OperationDetail) {
	o.Details = append(o.Details, d)
}

// OperationDetail is a complementary record (05) of the preceding operation.
type OperationDetail struct {
	BankCode               string
	InternalCode           *string
	DeskCode               string
	CurrencyCode           *string
	AccountNumber          string
	Code                   string
	Date                   time.Time
	AdditionalInformations string
	Qualifier              string
}
