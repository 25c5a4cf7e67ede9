package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// PurgeTargetObjects is the closed set of objects that can be purged.
// "package" is accepted as a spelling of "dataset".
var PurgeTargetObjects = []ckan.TargetObject{
	ckan.ObjectDataset,
	ckan.ObjectPackage,
	ckan.ObjectGroup,
	ckan.ObjectOrganization,
}

// PurgeCommand permanently deletes objects by id.
type PurgeCommand struct {
	client ActionCaller
	object ckan.TargetObject
	ids    []string
}

// NewPurgeCommand validates the target object and collects ids from the
// comma-separated list and/or the one-id-per-line reader. Blank lines and
// lines starting with '#' are skipped; duplicates keep their first
// position.
func NewPurgeCommand(client ActionCaller, object string, idList string, idFile io.Reader) (*PurgeCommand, error) {
	target, err := ckan.NormalizeTarget(object, PurgeTargetObjects)
	if err != nil {
		return nil, err
	}

	// Purge is the one verb where the API names the dataset action
	// dataset_purge, so the normalization runs the other way.
	if target == ckan.ObjectPackage {
		target = ckan.ObjectDataset
	}

	ids, err := collectIDs(idList, idFile)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, ckan.ErrNoIDsGiven
	}

	return &PurgeCommand{client: client, object: target, ids: ids}, nil
}

// Execute issues one {object}_purge POST per id, tolerating individual
// failures and reporting them in the summary.
func (c *PurgeCommand) Execute(ctx context.Context) (*ckan.BatchResult, error) {
	action := ckan.ActionName(c.object, "purge")
	result := &ckan.BatchResult{}

	for _, id := range c.ids {
		payload := map[string]interface{}{"id": id}

		_, err := c.client.Call(ctx, action, payload, false)
		result.Record(id, err == nil)
	}

	return result, nil
}

func collectIDs(idList string, idFile io.Reader) ([]string, error) {
	var ids []string

	seen := map[string]bool{}

	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}

		seen[id] = true
		ids = append(ids, id)
	}

	for _, id := range strings.Split(idList, ",") {
		add(id)
	}

	if idFile != nil {
		scanner := bufio.NewScanner(idFile)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(line, "#") {
				continue
			}

			add(line)
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading id file: %w", err)
		}
	}

	return ids, nil
}
