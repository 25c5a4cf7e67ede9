package command_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckanta-io/ckanta-client/internal/command"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

func TestPurgeCommand_DatasetActionIsDatasetPurge(t *testing.T) {
	t.Parallel()

	// Both spellings resolve to dataset_purge, never package_purge.
	for _, object := range []string{"dataset", "package"} {
		caller := newFakeCaller()

		purgeCmd, err := command.NewPurgeCommand(caller, object, "d1", nil)
		require.NoError(t, err)

		_, err = purgeCmd.Execute(context.Background())
		require.NoError(t, err)

		calls := *caller.calls
		require.Len(t, calls, 1)
		assert.Equal(t, "dataset_purge", calls[0].action)
		assert.Equal(t, map[string]interface{}{"id": "d1"}, calls[0].payload)
		assert.False(t, calls[0].asGet)
	}
}

func TestPurgeCommand_MergesListAndFile(t *testing.T) {
	t.Parallel()

	idFile := strings.NewReader("g3\n\n# retired groups\ng4\ng2\n")

	caller := newFakeCaller()

	purgeCmd, err := command.NewPurgeCommand(caller, "group", "g1, g2", idFile)
	require.NoError(t, err)

	result, err := purgeCmd.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ckan.Summary{Total: 4, Passed: 4, Failed: 0}, result.Summary)

	var actions []string

	var ids []string

	for _, call := range *caller.calls {
		actions = append(actions, call.action)
		ids = append(ids, call.payload["id"].(string))
	}

	assert.Equal(t, []string{"group_purge", "group_purge", "group_purge", "group_purge"}, actions)
	// Duplicates keep their first position; comments and blanks are skipped.
	assert.Equal(t, []string{"g1", "g2", "g3", "g4"}, ids)
}

func TestPurgeCommand_RequiresIDs(t *testing.T) {
	t.Parallel()

	_, err := command.NewPurgeCommand(newFakeCaller(), "organization", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ckan.ErrNoIDsGiven)
}

func TestPurgeCommand_RejectsUser(t *testing.T) {
	t.Parallel()

	_, err := command.NewPurgeCommand(newFakeCaller(), "user", "u1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ckan.ErrUnknownTargetObject)
}

func TestPurgeCommand_ToleratesPerIDFailures(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller()
	caller.handler = func(call fakeCall) (map[string]interface{}, error) {
		if call.payload["id"] == "d2" {
			return nil, &ckan.APIError{StatusCode: 404, Action: call.action}
		}

		return map[string]interface{}{"success": true}, nil
	}

	purgeCmd, err := command.NewPurgeCommand(caller, "dataset", "d1,d2,d3", nil)
	require.NoError(t, err)

	result, err := purgeCmd.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ckan.Summary{Total: 3, Passed: 2, Failed: 1}, result.Summary)
	assert.Equal(t, []string{"+ d1", "x d2", "+ d3"}, result.Results)
}
