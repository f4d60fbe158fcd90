package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/cfonb/internal/cfonb"
)

// Format names.
const (
	FormatStatement = "cfonb120"
	FormatTransfer  = "cfonb240"
)

// ErrUnknownFormat is returned by Detect when no layout matches.
var ErrUnknownFormat = errors.New("unknown CFONB format")

// StatementParser reads 120-column statement files.
type StatementParser struct {
	reader *cfonb.StatementReader
}

// NewStatementParser creates a parser for 120-column files.
func NewStatementParser(log zerolog.Logger) *StatementParser {
	return &StatementParser{reader: cfonb.NewStatementReader(log)}
}

// Format returns the parser name.
func (p *StatementParser) Format() string { return FormatStatement }

// Parse reads the whole file and decodes its statements.
func (p *StatementParser) Parse(r io.Reader, strict bool) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading cfonb120 file: %w", err)
	}
	statements, err := p.reader.Parse(string(data), strict)
	if err != nil {
		return nil, fmt.Errorf("parsing cfonb120: %w", err)
	}
	return &Batch{Format: FormatStatement, Statements: statements}, nil
}

// TransferParser reads 240-column transfer files.
type TransferParser struct {
	reader *cfonb.TransferReader
}

// NewTransferParser creates a parser for 240-column files.
func NewTransferParser(log zerolog.Logger) *TransferParser {
	return &TransferParser{reader: cfonb.NewTransferReader(log)}
}

// Format returns the parser name.
func (p *TransferParser) Format() string { return FormatTransfer }

// Parse reads the whole file and decodes its transfers.
func (p *TransferParser) Parse(r io.Reader, strict bool) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading cfonb240 file: %w", err)
	}
	transfers, err := p.reader.Parse(string(data), strict)
	if err != nil {
		return nil, fmt.Errorf("parsing cfonb240: %w", err)
	}
	return &Batch{Format: FormatTransfer, Transfers: transfers}, nil
}

// Detect guesses the layout from the first non-blank record: its code
// first, then its width.
func Detect(content string) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) >= 2 {
			switch line[:2] {
			case "01", "04", "05", "07":
				return FormatStatement, nil
			case "31", "34", "39":
				return FormatTransfer, nil
			}
		}
		switch {
		case len(line)%cfonb.TransferLineLength == 0:
			return FormatTransfer, nil
		case len(line)%cfonb.StatementLineLength == 0:
			return FormatStatement, nil
		}
		return "", ErrUnknownFormat
	}
	return "", ErrUnknownFormat
}
