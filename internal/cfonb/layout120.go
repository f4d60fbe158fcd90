package cfonb

import "github.com/cleared-dev/cfonb/internal/model"

// Column positions are 1-indexed and inclusive.

type balanceColumns struct {
	BankCode      column `fixed:"3,7"`
	DeskCode      column `fixed:"12,16"`
	CurrencyCode  column `fixed:"17,19"`
	Decimals      column `fixed:"20,20"`
	AccountNumber column `fixed:"22,32"`
	Date          column `fixed:"35,40"`
	Amount        column `fixed:"91,104"`
}

type operationColumns struct {
	BankCode      column `fixed:"3,7"`
	InternalCode  column `fixed:"8,11"`
	DeskCode      column `fixed:"12,16"`
	CurrencyCode  column `fixed:"17,19"`
	Decimals      column `fixed:"20,20"`
	AccountNumber column `fixed:"22,32"`
	Code          column `fixed:"33,34"`
	Date          column `fixed:"35,40"`
	RejectCode    column `fixed:"41,42"`
	ValueDate     column `fixed:"43,48"`
	Label         column `fixed:"49,79"`
	ExemptCode    column `fixed:"89,89"`
	Amount        column `fixed:"91,104"`
	Reference     column `fixed:"105,120"`
}

type detailColumns struct {
	BankCode               column `fixed:"3,7"`
	InternalCode           column `fixed:"8,11"`
	DeskCode               column `fixed:"12,16"`
	CurrencyCode           column `fixed:"17,19"`
	AccountNumber          column `fixed:"22,32"`
	Code                   column `fixed:"33,34"`
	Date                   column `fixed:"35,40"`
	Qualifier              column `fixed:"46,48"`
	AdditionalInformations column `fixed:"49,118"`
}

func decodeBalance(kind model.BalanceKind) decodeFunc {
	return func(line string, strict bool) (model.Element, error) {
		var c balanceColumns
		if err := unmarshalColumns(line, &c); err != nil {
			return nil, err
		}

		f := &fieldDecoder{strict: strict}
		b := &model.Balance{
			Kind:          kind,
			BankCode:      f.numeric("bankCode", c.BankCode),
			DeskCode:      f.numeric("deskCode", c.DeskCode),
			CurrencyCode:  f.currency("currencyCode", c.CurrencyCode),
			AccountNumber: f.text("accountNumber", c.AccountNumber),
			Date:          f.date("date", c.Date, shortDate),
			Amount:        f.signedAmount("amount", c.Amount, f.decimals("decimals", c.Decimals)),
		}
		if f.err != nil {
			return nil, f.err
		}
		return b, nil
	}
}

func decodeOperation(line string, strict bool) (model.Element, error) {
	var c operationColumns
	if err := unmarshalColumns(line, &c); err != nil {
		return nil, err
	}

	f := &fieldDecoder{strict: strict}
	op := &model.Operation{
		BankCode:      f.numeric("bankCode", c.BankCode),
		InternalCode:  f.optional("internalCode", c.InternalCode, isCode),
		DeskCode:      f.numeric("deskCode", c.DeskCode),
		CurrencyCode:  f.optional("currencyCode", c.CurrencyCode, isCurrency),
		AccountNumber: f.text("accountNumber", c.AccountNumber),
		Code:          f.code("code", c.Code),
		Date:          f.date("date", c.Date, shortDate),
		RejectCode:    f.optional("rejectCode", c.RejectCode, isCode),
		ValueDate:     f.date("valueDate", c.ValueDate, shortDate),
		Label:         f.text("label", c.Label),
		ExemptCode:    f.optional("exemptCode", c.ExemptCode, isCode),
		Amount:        f.signedAmount("amount", c.Amount, f.decimals("decimals", c.Decimals)),
		Reference:     f.text("reference", c.Reference),
	}
	if f.err != nil {
		return nil, f.err
	}
	return op, nil
}

func decodeOperationDetail(line string, strict bool) (model.Element, error) {
	var c detailColumns
	if err := unmarshalColumns(line, &c); err != nil {
		return nil, err
	}

	f := &fieldDecoder{strict: strict}
	d := &model.OperationDetail{
		BankCode:               f.numeric("bankCode", c.BankCode),
		InternalCode:           f.optional("internalCode", c.InternalCode, isCode),
		DeskCode:               f.numeric("deskCode", c.DeskCode),
		CurrencyCode:           f.optional("currencyCode", c.CurrencyCode, isCurrency),
		AccountNumber:          f.text("accountNumber", c.AccountNumber),
		Code:                   f.code("code", c.Code),
		Date:                   f.date("date", c.Date, shortDate),
		Qualifier:              f.text("qualifier", c.Qualifier),
		AdditionalInformations: f.text("additionalInformations", c.AdditionalInformations),
	}
	if f.err != nil {
		return nil, f.err
	}
	return d, nil
}
