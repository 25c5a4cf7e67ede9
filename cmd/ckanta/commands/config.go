package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ckanta-io/ckanta-client/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update instance configuration",
		Long:  "Show, list and update the named portal instances in the config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigSetKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var showKey bool

	cmd := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show one instance's configuration",
		Long:  "Show the urlbase and (masked) apikey for the named instance; defaults to the selected --instance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := viper.GetString("instance")
			if len(args) == 1 {
				name = args[0]
			}

			return runConfigShowCommand(name, showKey)
		},
	}

	cmd.Flags().BoolVar(&showKey, "show-key", false, "print the apikey unmasked")

	return cmd
}

func runConfigShowCommand(name string, showKey bool) error {
	instance, err := loadInstance(name)
	if err != nil {
		return err
	}

	apikey := Masked
	if showKey {
		apikey = instance.APIKey
	}

	_, _ = fmt.Fprintf(os.Stdout, "instance: %s\n", instance.Name)
	_, _ = fmt.Fprintf(os.Stdout, "urlbase: %s\n", instance.URLBase)
	_, _ = fmt.Fprintf(os.Stdout, "apikey: %s\n", apikey)

	return nil
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigListCommand()
		},
	}
}

func runConfigListCommand() error {
	file, err := config.Load(configFilePath())
	if err != nil {
		return err
	}

	names := file.Instances()
	if len(names) == 0 {
		_, _ = os.Stdout.WriteString("No instances configured\n")

		return nil
	}

	_, _ = os.Stdout.WriteString("Instances:\n")

	for _, name := range names {
		_, _ = fmt.Fprintf(os.Stdout, "   %s\n", name)
	}

	return nil
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [NAME]",
		Short: "Update an instance's API key",
		Long:  "Prompt for a new API key (no echo) and save it for the named instance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := viper.GetString("instance")
			if len(args) == 1 {
				name = args[0]
			}

			return runConfigSetKeyCommand(name)
		},
	}
}

func runConfigSetKeyCommand(name string) error {
	file, err := config.Load(configFilePath())
	if err != nil {
		return err
	}

	// Fail on an unknown instance before prompting.
	if _, err := file.Instance(name); err != nil {
		return err
	}

	fmt.Print("API key: ")

	byteKey, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	fmt.Println()

	if err := file.SetAPIKey(name, string(byteKey)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "API key updated for instance %s\n", name)

	return nil
}
