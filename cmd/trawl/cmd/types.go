package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trawl-dev/trawl/internal/config"
	"github.com/trawl-dev/trawl/internal/grep"
	"github.com/trawl-dev/trawl/internal/output"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List recognized file types",
		Long: `List the file type names accepted by --type, with the extensions
each one covers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(".")
			if err != nil {
				cfg = config.Default()
			}
			w := output.New(cmd.OutOrStdout(), resolveColor(cfg), resolveFormat(cfg))
			return w.PrintTypes(grep.Types())
		},
	}
}
