package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/accessblock/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "accessblock",
	Short: "Accessibility overlay: text size, colour schemes and bionic reading",
	Long: `accessblock serves per-user text size and colour scheme preferences as a
stylesheet for host pages, and a reading-mode toggle that swaps a page
region for its bionic reading rendition and back.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
