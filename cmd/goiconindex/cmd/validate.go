package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goiconindex/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate loads the configuration file, applies CLI overrides and
checks every setting.

Checks performed:
  - valid_ext is a non-empty list of extensions starting with "."
  - sort key is 'name' or 'path'
  - bucket credentials for s3:// roots
  - logging level and format

Example:
  goiconindex validate --config goiconindex.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig("")
	if err != nil {
		if config.IsValidationError(err) {
			cmd.Printf("❌ %s\n", err)
			return fmt.Errorf("configuration %s is invalid", configFile)
		}
		return err
	}

	cmd.Printf("=== Configuration Validation ===\n")
	cmd.Printf("Config file:     %s\n", configFile)
	cmd.Printf("Source root:     %s\n", cfg.Source.Root)
	cmd.Printf("Extensions:      %v\n", cfg.Index.ValidExt)
	cmd.Printf("Exclusions:      %d prefix(es)\n", len(cfg.Index.PathExclusions))
	cmd.Printf("Sort:            %s\n\n", cfg.Output.Sort)
	cmd.Println("✅ Configuration is valid")
	return nil
}
