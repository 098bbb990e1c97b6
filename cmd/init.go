package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hguenther/smtrs/internal/config"
)

// initCmd: smtrs init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Write(cfgFile, config.Default()); err != nil {
			return fmt.Errorf("initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", cfgFile)
		return nil
	},
}
