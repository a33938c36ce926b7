package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trawl-dev/trawl/configs"
	"github.com/trawl-dev/trawl/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage trawl configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var user bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		Long: `Write a commented configuration template.

By default creates .trawl.yaml in the current directory for per-project
settings. With --user, creates the user config at
~/.config/trawl/config.yaml instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigName
			template := configs.ProjectConfigTemplate
			if user {
				path = config.UserConfigPath()
				if path == "" {
					return fmt.Errorf("cannot resolve user config directory")
				}
				template = configs.UserConfigTemplate
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("cannot create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
				return fmt.Errorf("cannot write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which config files are in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			userPath := config.UserConfigPath()
			fmt.Fprintf(out, "user:    %s%s\n", userPath, existsNote(userPath))

			projPath := config.FindProjectConfig(".")
			if projPath == "" {
				fmt.Fprintln(out, "project: (none found)")
			} else {
				fmt.Fprintf(out, "project: %s\n", projPath)
			}
			return nil
		},
	}
}

func existsNote(path string) string {
	if path == "" {
		return " (unresolved)"
	}
	if _, err := os.Stat(path); err != nil {
		return " (not created)"
	}
	return ""
}
