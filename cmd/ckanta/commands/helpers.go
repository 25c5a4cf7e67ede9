package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ckanta-io/ckanta-client/internal/config"
	"github.com/ckanta-io/ckanta-client/internal/httpclient"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2

	Masked = "***"
)

// CreateClient builds the portal client from the global flags: explicit
// --urlbase/--apikey win, otherwise the selected instance from the config
// file.
func CreateClient() (*httpclient.Client, error) {
	urlbase := viper.GetString("urlbase")
	apikey := viper.GetString("apikey")

	if urlbase == "" || apikey == "" {
		instance, err := loadInstance(viper.GetString("instance"))
		if err != nil {
			return nil, err
		}

		if urlbase == "" {
			urlbase = instance.URLBase
		}

		if apikey == "" {
			apikey = instance.APIKey
		}
	}

	if urlbase == "" {
		return nil, ckan.ErrURLBaseRequired
	}

	var opts []httpclient.Option
	if viper.GetBool("verbose") {
		opts = append(opts, httpclient.WithDebug(true), httpclient.WithLogger(stderrLogger{}))
	}

	return httpclient.NewClient(urlbase, apikey, opts...), nil
}

func configFilePath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}

	return config.DefaultPath()
}

func loadInstance(name string) (config.Instance, error) {
	file, err := config.Load(configFilePath())
	if err != nil {
		return config.Instance{}, err
	}

	return file.Instance(name)
}

// stderrLogger writes debug output to stderr when --verbose is set.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	if len(fields) == 0 {
		fmt.Fprintf(os.Stderr, "%s: %s\n", level, msg)

		return
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}

	fmt.Fprintf(os.Stderr, "%s: %s %s\n", level, msg, strings.Join(parts, " "))
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

// StandardJSONRenderer encodes data as indented JSON on stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data as YAML on stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// tableDef names the columns rendered for one object kind, in order.
// Headers derive from the column names.
type tableDef struct {
	columns []string
}

// Per-object default column sets for table output.
var tableDefs = map[string]tableDef{
	"user":         {columns: []string{"id", "name", "fullname", "state", "sysadmin"}},
	"group":        {columns: []string{"id", "name", "title", "state"}},
	"organization": {columns: []string{"id", "name", "title", "state"}},
	"membership":   {columns: []string{"id", "title", "state"}},
}

func (d tableDef) headers() []string {
	headers := make([]string, len(d.columns))
	for i, column := range d.columns {
		headers[i] = strings.ToUpper(column[:1]) + strings.ReplaceAll(column[1:], "_", " ")
	}

	return headers
}

// RenderActionResult prints a decoded action response in the selected
// output format. Tables are built from the response's result field; shapes
// that do not tabulate fall back to JSON.
func RenderActionResult(object string, result map[string]interface{}) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(result)
	case OutputFormatYAML:
		return StandardYAMLRenderer(result)
	default:
		return renderResultTable(object, result)
	}
}

func renderResultTable(object string, result map[string]interface{}) error {
	switch rows := result["result"].(type) {
	case []interface{}:
		return renderRows(object, rows)
	case map[string]interface{}:
		return renderProperties(rows)
	default:
		return StandardJSONRenderer(result)
	}
}

// renderRows handles both shapes the list actions return: bare name lists
// (all_fields=false) and field maps.
func renderRows(object string, rows []interface{}) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	if _, ok := rows[0].(map[string]interface{}); !ok {
		table.Header("Name")

		for _, row := range rows {
			_ = table.Append(formatCell(row))
		}

		return renderTable(table, len(rows))
	}

	def, ok := tableDefs[object]
	if !ok {
		def = tableDef{columns: sortedKeys(rows[0].(map[string]interface{}))}
	}

	headerCells := make([]interface{}, len(def.columns))
	for i, header := range def.headers() {
		headerCells[i] = header
	}

	table.Header(headerCells...)

	for _, row := range rows {
		fields, _ := row.(map[string]interface{})

		cells := make([]interface{}, len(def.columns))
		for i, column := range def.columns {
			cells[i] = formatCell(fields[column])
		}

		_ = table.Append(cells...)
	}

	return renderTable(table, len(rows))
}

func renderProperties(fields map[string]interface{}) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	for _, key := range sortedKeys(fields) {
		_ = table.Append(key, formatCell(fields[key]))
	}

	return renderTable(table, len(fields))
}

// RenderBatchResult prints a batch outcome: the per-item lines and the
// summary.
func RenderBatchResult(result *ckan.BatchResult) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(result)
	case OutputFormatYAML:
		return StandardYAMLRenderer(result)
	default:
		for _, line := range result.Results {
			_, _ = fmt.Fprintln(os.Stdout, line)
		}

		_, _ = fmt.Fprintf(os.Stdout, "\ntotal: %d, passed: %d, failed: %d\n",
			result.Summary.Total, result.Summary.Passed, result.Summary.Failed)

		return nil
	}
}

func renderTable(table *tablewriter.Table, count int) error {
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "\n%d record(s)\n", count)

	return nil
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// ParseKeyValueArgs turns KEY=VALUE arguments into a payload map, decoding
// the boolean literals the list actions expect.
func ParseKeyValueArgs(args []string) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(args))

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid KEY=VALUE argument: %q", arg)
		}

		switch value {
		case "true":
			values[key] = true
		case "false":
			values[key] = false
		default:
			values[key] = value
		}
	}

	return values, nil
}
