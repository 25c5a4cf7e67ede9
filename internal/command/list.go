package command

import (
	"context"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// ListTargetObjects is the closed set of objects that can be listed.
var ListTargetObjects = []ckan.TargetObject{
	ckan.ObjectDataset,
	ckan.ObjectGroup,
	ckan.ObjectOrganization,
	ckan.ObjectUser,
}

// listPayloadBuilders maps each listable object to its default payload.
// Caller-supplied key=value options are merged over the defaults.
var listPayloadBuilders = map[ckan.TargetObject]func() map[string]interface{}{
	ckan.ObjectPackage: func() map[string]interface{} {
		return map[string]interface{}{}
	},
	ckan.ObjectGroup: func() map[string]interface{} {
		return map[string]interface{}{"sort": "name asc", "all_fields": false}
	},
	ckan.ObjectOrganization: func() map[string]interface{} {
		return map[string]interface{}{"sort": "name asc", "all_fields": false}
	},
	ckan.ObjectUser: func() map[string]interface{} {
		return map[string]interface{}{"all_fields": false}
	},
}

// ListCommand retrieves and lists objects from a portal instance.
type ListCommand struct {
	client ActionCaller
	object ckan.TargetObject
	extras map[string]interface{}
}

// NewListCommand validates the target object and builds the command.
func NewListCommand(client ActionCaller, object string, extras map[string]interface{}) (*ListCommand, error) {
	target, err := ckan.NormalizeTarget(object, ListTargetObjects)
	if err != nil {
		return nil, err
	}

	return &ListCommand{client: client, object: target, extras: extras}, nil
}

// Execute calls {object}_list and returns the decoded response unmodified.
func (c *ListCommand) Execute(ctx context.Context, asGet bool) (map[string]interface{}, error) {
	builder, ok := listPayloadBuilders[c.object]
	if !ok {
		return nil, ckan.NewCommandError(string(c.object), ckan.ErrNoPayloadBuilder)
	}

	payload := builder()
	for key, value := range c.extras {
		payload[key] = value
	}

	result, err := c.client.Call(ctx, ckan.ActionName(c.object, "list"), payload, asGet)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return result, nil
}
