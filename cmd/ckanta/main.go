package main

import (
	"fmt"
	"os"

	"github.com/ckanta-io/ckanta-client/cmd/ckanta/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ckanta",
	Short: "CKAN portal automation CLI",
	Long: `A command-line automation client for CKAN content portals.

ckanta drives the portal's /api/3/action API: listing and showing
datasets, groups, organizations and users, bulk uploads from CSV,
membership administration, and purges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.ckanta/config.ini)")
	rootCmd.PersistentFlags().StringP("instance", "i", "local", "named portal instance from the config file")
	rootCmd.PersistentFlags().StringP("urlbase", "u", "", "portal base URL (overrides the instance config)")
	rootCmd.PersistentFlags().StringP("apikey", "k", "", "API key (overrides the instance config)")
	rootCmd.PersistentFlags().Bool("get", false, "use GET instead of POST for read actions")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("instance", rootCmd.PersistentFlags().Lookup("instance"))
	_ = viper.BindPFlag("urlbase", rootCmd.PersistentFlags().Lookup("urlbase"))
	_ = viper.BindPFlag("apikey", rootCmd.PersistentFlags().Lookup("apikey"))
	_ = viper.BindPFlag("get", rootCmd.PersistentFlags().Lookup("get"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Read in environment variables that match
	viper.SetEnvPrefix("CKANTA")
	viper.AutomaticEnv()

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewMembershipCommand())
	rootCmd.AddCommand(commands.NewUploadCommand())
	rootCmd.AddCommand(commands.NewPurgeCommand())
	rootCmd.AddCommand(commands.NewDumpCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
