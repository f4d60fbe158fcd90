package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cfonb/internal/importer"
	"github.com/cleared-dev/cfonb/internal/importlog"
	"github.com/cleared-dev/cfonb/internal/store"
)

func newImportCommand(opts *options) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import every CFONB file waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			cfg, err := opts.load(repoRoot)
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)
			out := cmd.OutOrStdout()

			files, err := importer.Scan(repoRoot, cfg.Import.Dir, cfg.Import.Extensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No files to import.")
				return nil
			}

			db, err := store.Open(cmd.Context(), storePath(repoRoot, cfg.Store.Path))
			if err != nil {
				return err
			}
			defer db.Close()

			reg := importer.DefaultRegistry(log)
			for _, f := range files {
				data, err := os.ReadFile(f.Path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", f.Name, err)
				}

				parser, err := selectParser(reg, cfg.Parse.Format, string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}
				batch, err := parser.Parse(bytes.NewReader(data), cfg.Parse.Strict)
				if err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}

				id, err := db.Save(cmd.Context(), f.Name, batch)
				if err != nil {
					return fmt.Errorf("storing %s: %w", f.Name, err)
				}

				aggregates, operations := batch.Counts()
				entry := importlog.Entry{
					Timestamp:  time.Now(),
					File:       f.Name,
					Format:     batch.Format,
					ImportID:   id,
					Aggregates: aggregates,
					Operations: operations,
				}
				if err := importlog.Append(repoRoot, entry); err != nil {
					log.Warn().Err(err).Str("file", f.Name).Msg("failed to write import log")
				}

				if err := importer.MarkProcessed(repoRoot, cfg.Import.Dir, cfg.Import.ProcessedDir, f.Name); err != nil {
					return err
				}

				log.Info().Str("file", f.Name).Str("import_id", id).Str("format", batch.Format).
					Int("aggregates", aggregates).Int("operations", operations).Msg("imported")
				fmt.Fprintf(out, "%s: %d aggregates, %d operations (%s)\n", f.Name, aggregates, operations, batch.Format)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")

	return cmd
}

func newImportsCommand(opts *options) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List stored imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			cfg, err := opts.load(repoRoot)
			if err != nil {
				return err
			}

			db, err := store.Open(cmd.Context(), storePath(repoRoot, cfg.Store.Path))
			if err != nil {
				return err
			}
			defer db.Close()

			imports, err := db.Imports(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, imp := range imports {
				fmt.Fprintf(out, "%s  %s  %-8s  %-20s  %d/%d\n",
					imp.ImportedAt.Format(time.RFC3339), imp.ID, imp.Format, imp.FileName, imp.Aggregates, imp.Operations)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")

	return cmd
}

func storePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}
