package model

// Element is one decoded physical line of a CFONB file.
//
// The set of implementations is closed: Noop, *Balance, *Operation,
// *OperationDetail, *Header, *Transaction and *Total.
type Element interface {
	element()
}

// Noop is a blank or whitespace-only line.
type Noop struct{}

func (Noop) element()             {}
func (*Balance) element()         {}
func (*Operation) element()       {}
func (*OperationDetail) element() {}
func (*Header) element()          {}
func (*Transaction) element()     {}
func (*Total) element()           {}
