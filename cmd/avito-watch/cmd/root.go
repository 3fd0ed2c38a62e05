// Package cmd implements the avito-watch CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "avito-watch",
	Short: "Track Avito listings and get price-change notifications",
	Long: "avito-watch monitors marketplace listings for chat users: it polls\n" +
		"tracked listings on an interval, compares prices against the last\n" +
		"notified price, and emits notification events when the change crosses\n" +
		"a percentage threshold. It also proxies keyword searches.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(locationsCmd())
	rootCmd.AddCommand(versionCommand())
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
