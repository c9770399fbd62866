package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goiconindex/internal/display"
	"github.com/dbsmedya/goiconindex/internal/index"
)

var inspectRoot string

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Show the size variants of one image",
	Long: `Inspect lists every variant of a logical image with its pixel
dimensions. Name is the record name as shown by scan; a bare base name is
accepted when it is unambiguous.

Example:
  goiconindex inspect save --root ./icons`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectRoot, "root", "",
		"Source root (overrides source.root)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(inspectRoot)
	if err != nil {
		return err
	}
	defer log.Sync()

	session, err := openSession(cmd, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	name, err := resolveName(session.Index(), args[0])
	if err != nil {
		return err
	}

	rec, variants, err := session.Inspect(commandContext(cmd), name)
	if err != nil {
		return err
	}

	display.NewPrinter(cmd.OutOrStdout(), cfg.Output.Color).Variants(rec, variants)
	return nil
}

// resolveName accepts a full record name or a base name matching exactly
// one record.
func resolveName(idx *index.Index, name string) (string, error) {
	if _, ok := idx.Get(name); ok {
		return name, nil
	}

	var matches []string
	for _, candidate := range idx.Names() {
		if index.BaseName(candidate) == name {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no resource named %q", name)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("name %q is ambiguous: %s", name, strings.Join(matches, ", "))
	}
}
