package command

import (
	"context"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// membershipActions are queried in order; the printed results must stay
// ordered (organizations, groups).
var membershipActions = []string{
	"organization_list_for_user",
	"group_list_authz",
}

// MembershipCommand lists the organizations a user belongs to, and the
// groups as well when checkGroup is set.
type MembershipCommand struct {
	client     ActionCaller
	userID     string
	checkGroup bool
}

// NewMembershipCommand builds the command for the given user.
func NewMembershipCommand(client ActionCaller, userID string, checkGroup bool) (*MembershipCommand, error) {
	if userID == "" {
		return nil, ckan.ErrUserIDRequired
	}

	return &MembershipCommand{client: client, userID: userID, checkGroup: checkGroup}, nil
}

// Execute queries the membership actions in sequence and returns one
// decoded response per action, in (organizations, groups) order.
func (c *MembershipCommand) Execute(ctx context.Context, asGet bool) ([]map[string]interface{}, error) {
	payload := map[string]interface{}{"id": c.userID}

	targets := membershipActions
	if !c.checkGroup {
		targets = membershipActions[:1]
	}

	results := make([]map[string]interface{}, 0, len(targets))

	for _, action := range targets {
		result, err := c.client.Call(ctx, action, payload, asGet)
		if err != nil {
			return nil, wrapTransport(err)
		}

		results = append(results, result)
	}

	return results, nil
}
