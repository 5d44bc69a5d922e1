package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/accessblock/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize accessblock configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the preference store, provider settings and colour schemes, and writes the config file given by --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(configPath())
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
