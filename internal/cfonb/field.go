package cfonb

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ianlopshire/go-fixedwidth"
	"github.com/shopspring/decimal"
)

const (
	shortDate = "020106"   // DDMMYY, 120-column layout
	longDate  = "20060102" // YYYYMMDD, 240-column layout

	defaultDecimals = 2
)

// column is the untrimmed text of one fixed-width field.
type column string

// UnmarshalFixedWidth keeps the raw slice so shape checks see padding too.
func (c *column) UnmarshalFixedWidth(data []byte) error {
	*c = column(data)
	return nil
}

func (c column) trimmed() string { return strings.TrimSpace(string(c)) }

func (c column) blank() bool { return c.trimmed() == "" }

// unmarshalColumns slices a line into a struct of `fixed:"start,end"` columns.
func unmarshalColumns(line string, v any) error {
	if err := fixedwidth.Unmarshal([]byte(line), v); err != nil {
		return fmt.Errorf("slicing columns: %w", err)
	}
	return nil
}

// fieldDecoder converts columns to typed values and keeps the first failure.
//
// Required fields always fail on a malformed value. Optional fields fail only
// in strict mode; otherwise they decode as absent.
type fieldDecoder struct {
	strict bool
	err    error
}

func (d *fieldDecoder) fail(name string, raw column, reason string) {
	if d.err == nil {
		d.err = &FieldDecodeError{Field: name, Value: string(raw), Reason: reason}
	}
}

// numeric returns a required digits-only field, leading zeros kept.
func (d *fieldDecoder) numeric(name string, raw column) string {
	s := string(raw)
	if !isDigits(s) {
		d.fail(name, raw, "expected digits")
		return ""
	}
	return s
}

// integer returns a required digits-only field as an int.
func (d *fieldDecoder) integer(name string, raw column) int {
	s := d.numeric(name, raw)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		d.fail(name, raw, err.Error())
		return 0
	}
	return n
}

// text returns a trimmed free-text field; it may be blank.
func (d *fieldDecoder) text(name string, raw column) string {
	if !isPrintable(string(raw)) {
		d.fail(name, raw, "unprintable character")
		return ""
	}
	return raw.trimmed()
}

// code returns a required non-blank code made of digits and capital letters.
func (d *fieldDecoder) code(name string, raw column) string {
	s := raw.trimmed()
	if !isCode(s) {
		d.fail(name, raw, "expected an alphanumeric code")
		return ""
	}
	return s
}

// currency returns a required ISO 4217 style code.
func (d *fieldDecoder) currency(name string, raw column) string {
	s := raw.trimmed()
	if !isCurrency(s) {
		d.fail(name, raw, "expected a three letter currency code")
		return ""
	}
	return s
}

// optional returns nil for a blank column and checks the value otherwise.
func (d *fieldDecoder) optional(name string, raw column, valid func(string) bool) *string {
	if raw.blank() {
		return nil
	}
	s := raw.trimmed()
	if !valid(s) {
		if d.strict {
			d.fail(name, raw, "malformed optional value")
		}
		return nil
	}
	return &s
}

// date parses a required fixed-digit date.
func (d *fieldDecoder) date(name string, raw column, layout string) time.Time {
	s := string(raw)
	if len(s) != len(layout) || !isDigits(s) {
		d.fail(name, raw, "expected a date formatted "+layout)
		return time.Time{}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		d.fail(name, raw, "not a calendar date")
		return time.Time{}
	}
	return t
}

// optionalDate parses a date that may be blank or zero-filled.
func (d *fieldDecoder) optionalDate(name string, raw column, layout string) *time.Time {
	if raw.blank() || strings.Trim(string(raw), "0") == "" {
		return nil
	}
	t, err := time.Parse(layout, string(raw))
	if err != nil || !isDigits(string(raw)) {
		if d.strict {
			d.fail(name, raw, "expected a date formatted "+layout)
		}
		return nil
	}
	return &t
}

// decimals reads the decimal-count column of the 120-column layout.
func (d *fieldDecoder) decimals(name string, raw column) int32 {
	if raw.blank() {
		return defaultDecimals
	}
	if !isDigits(string(raw)) {
		if d.strict {
			d.fail(name, raw, "expected digits")
		}
		return defaultDecimals
	}
	n, _ := strconv.Atoi(string(raw))
	return int32(n)
}

// signedAmount decodes a 120-column amount: digits whose last position is an
// overpunched character carrying both the final digit and the sign.
func (d *fieldDecoder) signedAmount(name string, raw column, decimals int32) decimal.Decimal {
	s := string(raw)
	if len(s) < 2 || !isDigits(s[:len(s)-1]) {
		d.fail(name, raw, "expected digits followed by a sign character")
		return decimal.Zero
	}
	digit, negative, ok := overpunch(s[len(s)-1])
	if !ok {
		d.fail(name, raw, "unknown sign character")
		return decimal.Zero
	}
	return minorUnits(s[:len(s)-1]+string(digit), decimals, negative)
}

// amount decodes a 240-column amount: cents digits plus a separate sign column.
func (d *fieldDecoder) amount(name string, sign, digits column) decimal.Decimal {
	var negative bool
	switch string(sign) {
	case "+", " ", "":
	case "-":
		negative = true
	default:
		d.fail(name, sign, "expected sign '+' or '-'")
		return decimal.Zero
	}
	if !isDigits(string(digits)) {
		d.fail(name, digits, "expected digits")
		return decimal.Zero
	}
	return minorUnits(string(digits), defaultDecimals, negative)
}

// minorUnits turns an integer count of minor units into an exact decimal.
func minorUnits(digits string, decimals int32, negative bool) decimal.Decimal {
	v, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	v = v.Shift(-decimals)
	if negative {
		v = v.Neg()
	}
	return v
}

// overpunch maps the last character of a signed amount to its digit.
func overpunch(c byte) (digit byte, negative, ok bool) {
	switch {
	case c == '{':
		return '0', false, true
	case c >= 'A' && c <= 'I':
		return '1' + (c - 'A'), false, true
	case c == '}':
		return '0', true, true
	case c >= 'J' && c <= 'R':
		return '1' + (c - 'J'), true, true
	}
	return 0, false, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func isCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func isCurrency(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
