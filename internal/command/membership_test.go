package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckanta-io/ckanta-client/internal/command"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

func TestMembershipCommand_OrganizationsOnly(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller()
	caller.results["organization_list_for_user"] = map[string]interface{}{
		"success": true,
		"result":  []interface{}{map[string]interface{}{"id": "org-1"}},
	}

	listCmd, err := command.NewMembershipCommand(caller, "jdoe", false)
	require.NoError(t, err)

	results, err := listCmd.Execute(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, results, 1)

	calls := *caller.calls
	require.Len(t, calls, 1)
	assert.Equal(t, "organization_list_for_user", calls[0].action)
	assert.Equal(t, map[string]interface{}{"id": "jdoe"}, calls[0].payload)
}

func TestMembershipCommand_GroupsWhenFlagSet(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller()

	listCmd, err := command.NewMembershipCommand(caller, "jdoe", true)
	require.NoError(t, err)

	results, err := listCmd.Execute(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Printed ordering must stay (organizations, groups).
	calls := *caller.calls
	require.Len(t, calls, 2)
	assert.Equal(t, "organization_list_for_user", calls[0].action)
	assert.Equal(t, "group_list_authz", calls[1].action)
	assert.True(t, calls[0].asGet)
	assert.True(t, calls[1].asGet)
}

func TestMembershipCommand_RequiresUserID(t *testing.T) {
	t.Parallel()

	_, err := command.NewMembershipCommand(newFakeCaller(), "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ckan.ErrUserIDRequired)
}

func TestMembershipCommand_WrapsTransportFailure(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller()
	caller.fail["group_list_authz"] = &ckan.APIError{StatusCode: 500, Action: "group_list_authz"}

	listCmd, err := command.NewMembershipCommand(caller, "jdoe", true)
	require.NoError(t, err)

	_, err = listCmd.Execute(context.Background(), false)

	var cmdErr *ckan.CommandError

	require.ErrorAs(t, err, &cmdErr)
}
