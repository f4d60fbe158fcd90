// Package importlog keeps a CSV trail of imported CFONB files.
package importlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry records one imported file.
type Entry struct {
	Timestamp  time.Time
	File       string
	Format     string
	ImportID   string
	Aggregates int
	Operations int
}

// Header is the CSV header of import-log.csv.
const Header = "timestamp,file,format,import_id,aggregates,operations"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "logs/import-log.csv"
	colTimestamp  = 0
	colFile       = 1
	colFormat     = 2
	colImportID   = 3
	colAggregates = 4
	colOperations = 5
)

// Path returns the log location under repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, logFile)
}

func marshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colImportID] = e.ImportID
	row[colAggregates] = strconv.Itoa(e.Aggregates)
	row[colOperations] = strconv.Itoa(e.Operations)
	return row
}

func unmarshalEntry(record []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	aggregates, err := strconv.Atoi(record[colAggregates])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing aggregates %q: %w", record[colAggregates], err)
	}
	operations, err := strconv.Atoi(record[colOperations])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing operations %q: %w", record[colOperations], err)
	}

	return Entry{
		Timestamp:  ts,
		File:       record[colFile],
		Format:     record[colFormat],
		ImportID:   record[colImportID],
		Aggregates: aggregates,
		Operations: operations,
	}, nil
}

// Append writes entries to <repoRoot>/logs/import-log.csv, creating the file
// and header if needed.
func Append(repoRoot string, entries ...Entry) error {
	if err := os.MkdirAll(filepath.Join(repoRoot, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(repoRoot)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(marshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries of <repoRoot>/logs/import-log.csv, or nil when the
// file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
