package cfonb

import "github.com/cleared-dev/cfonb/internal/model"

type headerColumns struct {
	OperationCode  column `fixed:"3,4"`
	SequenceNumber column `fixed:"5,10"`
	CreatedAt      column `fixed:"11,18"`
	SenderName     column `fixed:"19,53"`
	BankCode       column `fixed:"54,58"`
	DeskCode       column `fixed:"59,63"`
	AccountNumber  column `fixed:"64,74"`
	CurrencyCode   column `fixed:"75,77"`
	Reference      column `fixed:"78,93"`
	SettlementDate column `fixed:"94,101"`
}

type transactionColumns struct {
	Code             column `fixed:"3,4"`
	SequenceNumber   column `fixed:"5,10"`
	Date             column `fixed:"11,18"`
	ValueDate        column `fixed:"19,26"`
	CounterpartyName column `fixed:"27,61"`
	BankCode         column `fixed:"62,66"`
	DeskCode         column `fixed:"67,71"`
	AccountNumber    column `fixed:"72,82"`
	InternalCode     column `fixed:"83,86"`
	CurrencyCode     column `fixed:"87,89"`
	RejectCode       column `fixed:"90,91"`
	ExemptCode       column `fixed:"92,92"`
	Label            column `fixed:"93,123"`
	Reference        column `fixed:"124,139"`
	Sign             column `fixed:"140,140"`
	Amount           column `fixed:"141,152"`
}

type totalColumns struct {
	OperationCode    column `fixed:"3,4"`
	SequenceNumber   column `fixed:"5,10"`
	Date             column `fixed:"11,18"`
	TransactionCount column `fixed:"19,24"`
	Sign             column `fixed:"25,25"`
	Amount           column `fixed:"26,43"`
}

func decodeHeader(line string, strict bool) (model.Element, error) {
	var c headerColumns
	if err := unmarshalColumns(line, &c); err != nil {
		return nil, err
	}

	f := &fieldDecoder{strict: strict}
	h := &model.Header{
		OperationCode:  f.numeric("operationCode", c.OperationCode),
		SequenceNumber: f.numeric("sequenceNumber", c.SequenceNumber),
		CreatedAt:      f.date("createdAt", c.CreatedAt, longDate),
		SenderName:     f.text("senderName", c.SenderName),
		BankCode:       f.numeric("bankCode", c.BankCode),
		DeskCode:       f.numeric("deskCode", c.DeskCode),
		AccountNumber:  f.text("accountNumber", c.AccountNumber),
		CurrencyCode:   f.optional("currencyCode", c.CurrencyCode, isCurrency),
		Reference:      f.text("reference", c.Reference),
		SettlementDate: f.optionalDate("settlementDate", c.SettlementDate, longDate),
	}
	if f.err != nil {
		return nil, f.err
	}
	return h, nil
}

func decodeTransaction(line string, strict bool) (model.Element, error) {
	var c transactionColumns
	if err := unmarshalColumns(line, &c); err != nil {
		return nil, err
	}

	f := &fieldDecoder{strict: strict}
	tx := &model.Transaction{
		Code:             f.numeric("code", c.Code),
		SequenceNumber:   f.numeric("sequenceNumber", c.SequenceNumber),
		Date:             f.date("date", c.Date, longDate),
		ValueDate:        f.date("valueDate", c.ValueDate, longDate),
		CounterpartyName: f.text("counterpartyName", c.CounterpartyName),
		BankCode:         f.numeric("bankCode", c.BankCode),
		DeskCode:         f.numeric("deskCode", c.DeskCode),
		AccountNumber:    f.text("accountNumber", c.AccountNumber),
		InternalCode:     f.optional("internalCode", c.InternalCode, isCode),
		CurrencyCode:     f.optional("currencyCode", c.CurrencyCode, isCurrency),
		RejectCode:       f.optional("rejectCode", c.RejectCode, isCode),
		ExemptCode:       f.optional("exemptCode", c.ExemptCode, isCode),
		Label:            f.text("label", c.Label),
		Reference:        f.text("reference", c.Reference),
		Amount:           f.amount("amount", c.Sign, c.Amount),
	}
	if f.err != nil {
		return nil, f.err
	}
	return tx, nil
}

func decodeTotal(line string, strict bool) (model.Element, error) {
	var c totalColumns
	if err := unmarshalColumns(line, &c); err != nil {
		return nil, err
	}

	f := &fieldDecoder{strict: strict}
	t := &model.Total{
		OperationCode:    f.numeric("operationCode", c.OperationCode),
		SequenceNumber:   f.numeric("sequenceNumber", c.SequenceNumber),
		Date:             f.date("date", c.Date, longDate),
		TransactionCount: f.integer("transactionCount", c.TransactionCount),
		Amount:           f.amount("amount", c.Sign, c.Amount),
	}
	if f.err != nil {
		return nil, f.err
	}
	return t, nil
}
