package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/cfonb/internal/importer"
)

// Output formats accepted by Write.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
	FormatCSV     = "csv"
)

// Write encodes the batch to w in the given format.
func Write(w io.Writer, format string, b *importer.Batch) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(b)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(b)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(NewDocument(b)); err != nil {
			return fmt.Errorf("encoding msgpack: %w", err)
		}
	case FormatCSV:
		return WriteOperationsCSV(w, b)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
