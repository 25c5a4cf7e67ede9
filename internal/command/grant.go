package command

import (
	"context"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// GrantTargetObjects is the closed set of objects a membership can be
// granted on.
var GrantTargetObjects = []ckan.TargetObject{
	ckan.ObjectDataset,
	ckan.ObjectGroup,
	ckan.ObjectOrganization,
}

// MembershipGrantCommand grants a user a role on groups or organizations,
// or dataset access via the portal's delegated access-request flow.
type MembershipGrantCommand struct {
	client  ActionCaller
	asUser  KeyedCallerFunc
	object  ckan.TargetObject
	userID  string
	role    ckan.Role
	targets []string
}

// NewMembershipGrantCommand validates the grant parameters. Role "none"
// is rejected: revoking a membership is a different action family.
func NewMembershipGrantCommand(client ActionCaller, asUser KeyedCallerFunc, object, userID string, role ckan.Role, targets []string) (*MembershipGrantCommand, error) {
	target, err := ckan.NormalizeTarget(object, GrantTargetObjects)
	if err != nil {
		return nil, err
	}

	if role == ckan.RoleNone {
		return nil, ckan.ErrRoleNotSupported
	}

	if userID == "" {
		return nil, ckan.ErrUserIDRequired
	}

	if len(targets) == 0 {
		return nil, ckan.ErrNoIDsGiven
	}

	return &MembershipGrantCommand{
		client:  client,
		asUser:  asUser,
		object:  target,
		userID:  userID,
		role:    role,
		targets: targets,
	}, nil
}

// Execute grants the membership per target, collecting per-item outcomes.
// A single failed target never aborts the remaining items.
func (c *MembershipGrantCommand) Execute(ctx context.Context) (*ckan.BatchResult, error) {
	if c.object == ckan.ObjectPackage {
		return c.grantDatasetAccess(ctx)
	}

	result := &ckan.BatchResult{}
	action := ckan.ActionName(c.object, "member_create")

	for _, target := range c.targets {
		payload := map[string]interface{}{
			"id":       target,
			"username": c.userID,
			"role":     c.role.String(),
		}

		_, err := c.client.Call(ctx, action, payload, false)
		result.Record(target, err == nil)
	}

	return result, nil
}

// grantDatasetAccess runs the two-step request/approve flow: the access
// request is issued as the target user with their own API key fetched via
// user_show, then approved with the caller's key. Failing to resolve the
// user aborts the whole batch with a zero summary.
func (c *MembershipGrantCommand) grantDatasetAccess(ctx context.Context) (*ckan.BatchResult, error) {
	result := &ckan.BatchResult{}

	userClient, err := c.lookupUserClient(ctx)
	if err != nil {
		return result, wrapTransport(err)
	}

	for _, target := range c.targets {
		requestID, err := c.createAccessRequest(ctx, userClient, target)
		if err != nil {
			result.Record(target, false)

			continue
		}

		payload := map[string]interface{}{"id": requestID, "status": "approved"}

		_, err = c.client.Call(ctx, "access_request_update", payload, false)
		result.Record(target, err == nil)
	}

	return result, nil
}

func (c *MembershipGrantCommand) lookupUserClient(ctx context.Context) (ActionCaller, error) {
	payload := map[string]interface{}{
		"id":                    c.userID,
		"include_plugin_extras": true,
	}

	response, err := c.client.Call(ctx, "user_show", payload, false)
	if err != nil {
		return nil, err
	}

	profile, _ := response["result"].(map[string]interface{})

	apikey, _ := profile["apikey"].(string)
	if apikey == "" {
		return nil, ckan.ErrNoAPIKeyInProfile
	}

	return c.asUser(apikey), nil
}

func (c *MembershipGrantCommand) createAccessRequest(ctx context.Context, userClient ActionCaller, target string) (string, error) {
	payload := map[string]interface{}{"package_id": target}

	response, err := userClient.Call(ctx, "access_request_create", payload, false)
	if err != nil {
		return "", err
	}

	request, _ := response["result"].(map[string]interface{})

	requestID, _ := request["id"].(string)
	if requestID == "" {
		return "", ckan.ErrNoRequestID
	}

	return requestID, nil
}
