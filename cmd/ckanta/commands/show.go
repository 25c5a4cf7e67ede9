package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ckanta-io/ckanta-client/internal/command"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show OBJECT ID",
		Short: "Show one object from a portal instance",
		Long: `Retrieve and show a single object from a portal instance.

OBJECT is one of: dataset, group, organization, user. ID is the object's
id or name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowCommand(args[0], args[1])
		},
	}
}

func runShowCommand(object, objectID string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	showCmd, err := command.NewShowCommand(client, object, objectID)
	if err != nil {
		return err
	}

	result, err := showCmd.Execute(context.Background(), viper.GetBool("get"))
	if err != nil {
		return err
	}

	return RenderActionResult(object, result)
}
