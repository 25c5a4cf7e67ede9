package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ckanta-io/ckanta-client/internal/command"
)

// NewPurgeCommand creates the purge command.
func NewPurgeCommand() *cobra.Command {
	var (
		idList string
		idFile string
	)

	cmd := &cobra.Command{
		Use:   "purge OBJECT",
		Short: "Permanently delete objects by id",
		Long: `Permanently purge objects from a portal instance.

OBJECT is one of: dataset, group, organization. Ids come from --ids, from
a one-id-per-line file via --id-file, or both. A failing id is reported in
the summary and never aborts the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurgeCommand(args[0], idList, idFile)
		},
	}

	cmd.Flags().StringVar(&idList, "ids", "", "comma-separated object ids")
	cmd.Flags().StringVar(&idFile, "id-file", "", "file with one object id per line")

	return cmd
}

func runPurgeCommand(object, idList, idFilePath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	var idFile io.Reader

	if idFilePath != "" {
		file, err := os.Open(idFilePath)
		if err != nil {
			return fmt.Errorf("opening id file: %w", err)
		}
		defer func() { _ = file.Close() }()

		idFile = file
	}

	purgeCmd, err := command.NewPurgeCommand(client, object, idList, idFile)
	if err != nil {
		return err
	}

	result, err := purgeCmd.Execute(context.Background())
	if err != nil {
		return err
	}

	return RenderBatchResult(result)
}
