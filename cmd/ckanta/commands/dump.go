package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ckanta-io/ckanta-client/internal/command"
	"github.com/ckanta-io/ckanta-client/internal/constants"
)

var errNoObjectsToDump = errors.New("no objects found to dump")

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	var (
		limit   int
		offset  int
		outfile string
	)

	cmd := &cobra.Command{
		Use:   "dump OBJECT",
		Short: "Export objects to a CSV file",
		Long: `List objects, fetch each one, and write the records to a CSV file.

OBJECT is one of: dataset, group, organization, user. Objects are fetched
in name order; --limit and --offset select the slice to export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDumpCommand(args[0], limit, offset, outfile)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultDumpLimit, "number of objects to export")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of objects to skip")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "output file (default <object>-dump.csv)")

	return cmd
}

func runDumpCommand(object string, limit, offset int, outfile string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	asGet := viper.GetBool("get")

	names, err := fetchObjectNames(ctx, client, object, asGet)
	if err != nil {
		return err
	}

	sort.Strings(names)

	if offset >= len(names) {
		return errNoObjectsToDump
	}

	if end := offset + limit; end < len(names) {
		names = names[offset:end]
	} else {
		names = names[offset:]
	}

	records, err := fetchObjectRecords(ctx, client, object, names, asGet)
	if err != nil {
		return err
	}

	if outfile == "" {
		outfile = fmt.Sprintf("%s-dump.csv", object)
	}

	if err := writeRecordsCSV(outfile, records); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Exported %d record(s) to %s\n", len(records), outfile)

	return nil
}

func fetchObjectNames(ctx context.Context, client command.ActionCaller, object string, asGet bool) ([]string, error) {
	listCmd, err := command.NewListCommand(client, object, nil)
	if err != nil {
		return nil, err
	}

	result, err := listCmd.Execute(ctx, asGet)
	if err != nil {
		return nil, err
	}

	rows, _ := result["result"].([]interface{})

	var names []string

	for _, row := range rows {
		switch v := row.(type) {
		case string:
			names = append(names, v)
		case map[string]interface{}:
			if name, ok := v["name"].(string); ok {
				names = append(names, name)
			}
		}
	}

	if len(names) == 0 {
		return nil, errNoObjectsToDump
	}

	return names, nil
}

func fetchObjectRecords(ctx context.Context, client command.ActionCaller, object string, names []string, asGet bool) ([]map[string]interface{}, error) {
	records := make([]map[string]interface{}, 0, len(names))

	for _, name := range names {
		showCmd, err := command.NewShowCommand(client, object, name)
		if err != nil {
			return nil, err
		}

		result, err := showCmd.Execute(ctx, asGet)
		if err != nil {
			return nil, err
		}

		if record, ok := result["result"].(map[string]interface{}); ok {
			records = append(records, record)
		}
	}

	if len(records) == 0 {
		return nil, errNoObjectsToDump
	}

	return records, nil
}

// writeRecordsCSV persists the records with a header derived from the
// first record's fields.
func writeRecordsCSV(path string, records []map[string]interface{}) error {
	fieldnames := sortedKeys(records[0])

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(fieldnames); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, record := range records {
		row := make([]string, len(fieldnames))
		for i, field := range fieldnames {
			row[i] = formatCell(record[field])
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}

	return nil
}
