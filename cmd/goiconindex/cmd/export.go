package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goiconindex/internal/export"
	"github.com/dbsmedya/goiconindex/internal/index"
)

var (
	exportFormat string
	exportOutput string
)

// createOutput opens the --output destination.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

var exportCmd = &cobra.Command{
	Use:   "export [root]",
	Short: "Export the grouped index as JSON or YAML",
	Long: `Export builds the index for root and writes every record with its
extension, representative path, size suffixes and variant paths.

Example:
  goiconindex export ./icons --format yaml --output icons.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json",
		"Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"Write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg, log, err := setup(rootArg(args))
	if err != nil {
		return err
	}
	defer log.Sync()

	session, err := openSession(cmd, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	key, err := index.ParseSortKey(cfg.Output.Sort)
	if err != nil {
		return err
	}
	records, err := session.Index().SortedList(key)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		return export.Write(w, session.Source().Root(), records, format)
	}
	if exportOutput == "" {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeOutputFile(exportOutput, write)
	}
	if err != nil {
		return err
	}

	log.Infow("Exported index", "records", len(records), "format", format, "output", exportOutput)
	return nil
}

// writeOutputFile runs write against a newly created file at path. A failed
// Close is reported when the write itself succeeded.
func writeOutputFile(path string, write func(io.Writer) error) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return write(f)
}
