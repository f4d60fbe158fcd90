package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/cfonb/internal/model"
)

// Parser converts a CFONB file into a Batch.
type Parser interface {
	Parse(r io.Reader, strict bool) (*Batch, error)
	Format() string
}

// Batch is the decoded content of one file. Only the slice matching Format
// is filled.
type Batch struct {
	Format     string
	Statements []*model.Statement
	Transfers  []*model.Transfer
}

// Counts returns the number of aggregates and of operations/transactions.
func (b *Batch) Counts() (aggregates, operations int) {
	for _, st := range b.Statements {
		aggregates++
		operations += len(st.Operations)
	}
	for _, tr := range b.Transfers {
		aggregates++
		operations += len(tr.Transactions)
	}
	return aggregates, operations
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with the 120 and 240 column parsers.
func DefaultRegistry(log zerolog.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewStatementParser(log))
	r.Register(NewTransferParser(log))
	return r
}

// Scan returns the files of <repoRoot>/<dir> whose extension is in exts.
// An empty exts accepts every file.
func Scan(repoRoot, dir string, exts []string) ([]FileInfo, error) {
	full := filepath.Join(repoRoot, dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !hasExtension(e.Name(), exts) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(full, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// MarkProcessed moves a file from <repoRoot>/<dir> to <repoRoot>/<processedDir>.
func MarkProcessed(repoRoot, dir, processedDir, fileName string) error {
	src := filepath.Join(repoRoot, dir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
