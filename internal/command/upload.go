package command

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/gosimple/slug"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// Column prefixes that fold into nested payload structures.
const (
	extrasColumnPrefix   = "extras:"
	resourceColumnPrefix = "res:"
)

// UploadTargetObjects is the closed set of objects that can be created
// from CSV rows.
var UploadTargetObjects = []ckan.TargetObject{
	ckan.ObjectDataset,
	ckan.ObjectGroup,
	ckan.ObjectOrganization,
}

// uploadPayloadBuilders maps each uploadable object to its row transform.
var uploadPayloadBuilders = map[ckan.TargetObject]func(row map[string]string) map[string]interface{}{
	ckan.ObjectPackage:      buildPackagePayload,
	ckan.ObjectGroup:        buildGroupPayload,
	ckan.ObjectOrganization: buildGroupPayload,
}

// UploadCommand streams CSV rows through an object-specific payload
// transform and creates one object per row.
type UploadCommand struct {
	client   ActionCaller
	object   ckan.TargetObject
	infile   io.Reader
	defaults map[string]string
}

// NewUploadCommand validates the target object and the input file.
// Defaults fill columns the CSV leaves absent or empty.
func NewUploadCommand(client ActionCaller, object string, infile io.Reader, defaults map[string]string) (*UploadCommand, error) {
	target, err := ckan.NormalizeTarget(object, UploadTargetObjects)
	if err != nil {
		return nil, err
	}

	if infile == nil {
		return nil, ckan.ErrInfileRequired
	}

	return &UploadCommand{client: client, object: target, infile: infile, defaults: defaults}, nil
}

// Execute issues one {object}_create POST per CSV row. A single bad row
// never aborts the batch; each outcome is recorded in the summary.
func (c *UploadCommand) Execute(ctx context.Context) (*ckan.BatchResult, error) {
	builder, ok := uploadPayloadBuilders[c.object]
	if !ok {
		return nil, ckan.NewCommandError(string(c.object), ckan.ErrNoPayloadBuilder)
	}

	reader := csv.NewReader(c.infile)

	header, err := reader.Read()
	if err != nil {
		return nil, ckan.NewCommandError("reading CSV header", err)
	}

	action := ckan.ActionName(c.object, "create")
	result := &ckan.BatchResult{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				result.Record("?", false)

				continue
			}

			return result, ckan.NewCommandError("reading CSV row", err)
		}

		payload := builder(c.rowValues(header, record))

		name, _ := payload["name"].(string)
		if name == "" {
			name = "?"
		}

		_, err = c.client.Call(ctx, action, payload, false)
		result.Record(name, err == nil)
	}

	return result, nil
}

// rowValues zips the header with one record and fills configured defaults
// for columns the row leaves absent or empty.
func (c *UploadCommand) rowValues(header, record []string) map[string]string {
	row := make(map[string]string, len(header)+len(c.defaults))

	for i, column := range header {
		if i < len(record) {
			row[column] = record[i]
		}
	}

	for column, value := range c.defaults {
		if row[column] == "" {
			row[column] = value
		}
	}

	return row
}

// buildPackagePayload shapes a CSV row into a package_create payload:
// extras:* columns fold into {key, value} pairs, res:* columns into one
// resource, name defaults to the slugified title, and sector_id selects
// the dataset's group.
func buildPackagePayload(row map[string]string) map[string]interface{} {
	payload, extras, resource := splitRow(row)

	setDefault(payload, "type", "dataset")
	setDefault(payload, "state", "active")
	setDefault(payload, "private", "false")

	if title, ok := payload["title"].(string); ok {
		setDefault(payload, "name", slug.Make(title))
	}

	if sectorID, ok := payload["sector_id"].(string); ok && sectorID != "" {
		payload["groups"] = []map[string]interface{}{{"name": sectorID}}
	}

	if len(extras) > 0 {
		payload["extras"] = extras
	}

	if len(resource) > 0 {
		payload["resources"] = []map[string]interface{}{resource}
	}

	return payload
}

// buildGroupPayload shapes a CSV row into a group_create or
// organization_create payload with extras:* folding.
func buildGroupPayload(row map[string]string) map[string]interface{} {
	payload, extras, _ := splitRow(row)

	if title, ok := payload["title"].(string); ok {
		setDefault(payload, "name", slug.Make(title))
	}

	if len(extras) > 0 {
		payload["extras"] = extras
	}

	return payload
}

// splitRow separates plain columns from extras:* and res:* columns.
func splitRow(row map[string]string) (map[string]interface{}, []map[string]interface{}, map[string]interface{}) {
	payload := make(map[string]interface{}, len(row))
	resource := map[string]interface{}{}

	var extras []map[string]interface{}

	for column, value := range row {
		switch {
		case strings.HasPrefix(column, extrasColumnPrefix):
			extras = append(extras, map[string]interface{}{
				"key":   strings.TrimPrefix(column, extrasColumnPrefix),
				"value": value,
			})
		case strings.HasPrefix(column, resourceColumnPrefix):
			resource[strings.TrimPrefix(column, resourceColumnPrefix)] = value
		default:
			payload[column] = value
		}
	}

	return payload, extras, resource
}

// setDefault sets the key when it is absent or holds an empty string.
func setDefault(payload map[string]interface{}, key string, value interface{}) {
	if current, ok := payload[key]; ok {
		if text, isString := current.(string); !isString || text != "" {
			return
		}
	}

	payload[key] = value
}
