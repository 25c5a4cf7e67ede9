package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ckanta-io/ckanta-client/internal/command"
)

// NewUploadCommand creates the upload command.
func NewUploadCommand() *cobra.Command {
	var defaults []string

	cmd := &cobra.Command{
		Use:   "upload OBJECT FILE",
		Short: "Create objects from CSV rows",
		Long: `Create one object per row of a header-driven CSV file.

OBJECT is one of: dataset, group, organization. Columns named extras:<key>
fold into the object's extras list; for datasets, res:<key> columns fold
into a resource. A failing row is reported in the summary and never aborts
the batch.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUploadCommand(args[0], args[1], defaults)
		},
	}

	cmd.Flags().StringArrayVarP(&defaults, "default", "d", nil, "KEY=VALUE default for columns the CSV leaves empty (repeatable)")

	return cmd
}

func runUploadCommand(object, path string, defaultArgs []string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	defaults := make(map[string]string, len(defaultArgs))

	parsed, err := ParseKeyValueArgs(defaultArgs)
	if err != nil {
		return err
	}

	for key, value := range parsed {
		defaults[key] = fmt.Sprintf("%v", value)
	}

	infile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening CSV file: %w", err)
	}
	defer func() { _ = infile.Close() }()

	uploadCmd, err := command.NewUploadCommand(client, object, infile, defaults)
	if err != nil {
		return err
	}

	result, err := uploadCmd.Execute(context.Background())
	if err != nil {
		return err
	}

	return RenderBatchResult(result)
}
