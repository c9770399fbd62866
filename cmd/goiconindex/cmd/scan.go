package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goiconindex/internal/browser"
	"github.com/dbsmedya/goiconindex/internal/config"
	"github.com/dbsmedya/goiconindex/internal/display"
	"github.com/dbsmedya/goiconindex/internal/index"
	"github.com/dbsmedya/goiconindex/internal/logger"
	"github.com/dbsmedya/goiconindex/internal/resource"
)

var (
	scanFilter  string
	scanOnlyExt []string
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "List grouped image resources",
	Long: `Scan enumerates image resources under root (or source.root from the
configuration) and prints one row per logical image with the sizes found.

Root may be a directory, a .zip archive, or s3://bucket/prefix.

Example:
  goiconindex scan ./icons --sort path --filter save
  goiconindex scan assets.zip --only-ext .svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFilter, "filter", "f", "",
		"Only show records whose name contains this text (case-insensitive)")
	scanCmd.Flags().StringSliceVar(&scanOnlyExt, "only-ext", nil,
		"Only show records with a variant of these extensions")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
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

	records, err := session.Search(index.Query{Text: scanFilter, Extensions: scanOnlyExt}, key)
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout(), cfg.Output.Color)
	p.Header("Resources: %s", session.Source().Root())
	fmt.Fprintln(cmd.OutOrStdout())

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching resources found")
		return nil
	}

	p.Section("Records")
	p.Records(records)

	paths := 0
	for _, r := range records {
		paths += len(r.Paths)
	}
	p.Summary(len(records), paths)

	stats, builtAt := session.Stats()
	log.Debugw("Scan complete",
		"visited", stats.Visited,
		"excluded", stats.Excluded,
		"built_at", builtAt,
	)
	return nil
}

// openSession opens the configured source and builds its index.
func openSession(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (*browser.Session, error) {
	src, err := resource.Open(cfg.Source.Root, cfg.Source.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}

	registry := browser.NewRegistry(log)
	session, err := registry.Open(commandContext(cmd), cmd.Name(), src, resource.OptionsFromConfig(cfg.Index))
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("failed to index %s: %w", src.Root(), err)
	}
	return session, nil
}
