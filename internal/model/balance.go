package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKind tells an opening balance from a closing one.
type BalanceKind string

const (
	BalanceOld BalanceKind = "old" // record code 01
	BalanceNew BalanceKind = "new" // record code 07
)

// Balance is an opening or closing account balance of a 120-column statement.
type Balance struct {
	Kind          BalanceKind
	BankCode      string
	DeskCode      string
	CurrencyCode  string
	AccountNumber string
	Date          time.Time
	Amount        decimal.Decimal
}
