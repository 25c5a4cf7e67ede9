package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ckanta-io/ckanta-client/internal/command"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list OBJECT [KEY=VALUE...]",
		Short: "List objects on a portal instance",
		Long: `Retrieve and list objects from a portal instance.

OBJECT is one of: dataset, group, organization, user. Additional KEY=VALUE
arguments are merged into the action payload, e.g. "all_fields=true".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListCommand(args[0], args[1:])
		},
	}
}

func runListCommand(object string, extraArgs []string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	extras, err := ParseKeyValueArgs(extraArgs)
	if err != nil {
		return err
	}

	listCmd, err := command.NewListCommand(client, object, extras)
	if err != nil {
		return err
	}

	result, err := listCmd.Execute(context.Background(), viper.GetBool("get"))
	if err != nil {
		return err
	}

	return RenderActionResult(object, result)
}
