package command

import (
	"context"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// ShowTargetObjects is the closed set of objects that can be shown.
var ShowTargetObjects = []ckan.TargetObject{
	ckan.ObjectDataset,
	ckan.ObjectGroup,
	ckan.ObjectOrganization,
	ckan.ObjectUser,
}

// ShowCommand retrieves a single object from a portal instance.
type ShowCommand struct {
	client   ActionCaller
	object   ckan.TargetObject
	objectID string
}

// NewShowCommand validates the target object and required id.
func NewShowCommand(client ActionCaller, object, objectID string) (*ShowCommand, error) {
	target, err := ckan.NormalizeTarget(object, ShowTargetObjects)
	if err != nil {
		return nil, err
	}

	if objectID == "" {
		return nil, ckan.ErrObjectIDRequired
	}

	return &ShowCommand{client: client, object: target, objectID: objectID}, nil
}

// Execute calls {object}_show with the object id.
func (c *ShowCommand) Execute(ctx context.Context, asGet bool) (map[string]interface{}, error) {
	payload := map[string]interface{}{"id": c.objectID}

	result, err := c.client.Call(ctx, ckan.ActionName(c.object, "show"), payload, asGet)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return result, nil
}
