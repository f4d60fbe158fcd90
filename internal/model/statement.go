package model

import (
	"errors"
	"fmt"
)

// ErrBalanceUnavailable is matched by every BalanceUnavailableError.
var ErrBalanceUnavailable = errors.New("balance unavailable")

// BalanceUnavailableError is returned when reading a balance the statement
// does not carry. Check HasOldBalance/HasNewBalance first.
type BalanceUnavailableError struct {
	Which BalanceKind
}

func (e *BalanceUnavailableError) Error() string {
	return fmt.Sprintf("%s balance is not set", e.Which)
}

// Is reports whether target is ErrBalanceUnavailable.
func (e *BalanceUnavailableError) Is(target error) bool {
	return target == ErrBalanceUnavailable
}

// Statement is an account statement decoded from a 120-column file.
type Statement struct {
	Operations []*Operation

	oldBalance *Balance
	newBalance *Balance
}

// NewStatement creates a statement opened by its old balance.
// A nil balance leaves the statement without one.
func NewStatement(old *Balance) *Statement {
	return &Statement{oldBalance: old}
}

// AddOperation appends an operation in file order.
func (s *Statement) AddOperation(op *Operation) {
	s.Operations = append(s.Operations, op)
}

// LastOperation returns the most recently appended operation, or nil.
func (s *Statement) LastOperation() *Operation {
	if len(s.Operations) == 0 {
		return nil
	}
	return s.Operations[len(s.Operations)-1]
}

// HasOldBalance reports whether the opening balance is set.
func (s *Statement) HasOldBalance() bool { return s.oldBalance != nil }

// OldBalance returns the opening balance.
func (s *Statement) OldBalance() (*Balance, error) {
	if s.oldBalance == nil {
		return nil, &BalanceUnavailableError{Which: BalanceOld}
	}
	return s.oldBalance, nil
}

// HasNewBalance reports whether the closing balance is set.
func (s *Statement) HasNewBalance() bool { return s.newBalance != nil }

// NewBalance returns the closing balance.
func (s *Statement) NewBalance() (*Balance, error) {
	if s.newBalance == nil {
		return nil, &BalanceUnavailableError{Which: BalanceNew}
	}
	return s.newBalance, nil
}

// SetNewBalance records the closing balance.
func (s *Statement) SetNewBalance(b *Balance) {
	s.newBalance = b
}
