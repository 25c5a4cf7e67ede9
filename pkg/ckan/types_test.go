package ckan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

func TestParseRole_RoundTrips(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"none", "member", "editor", "admin"} {
		role, err := ckan.ParseRole(name)
		require.NoError(t, err)
		assert.Equal(t, name, role.String())
	}
}

func TestParseRole_FailsForUnknownName(t *testing.T) {
	t.Parallel()

	_, err := ckan.ParseRole("bad-name")
	require.Error(t, err)
	assert.ErrorIs(t, err, ckan.ErrUnknownRole)
}

func TestRoleNames_Excludes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"none", "member", "editor", "admin"}, ckan.RoleNames())
	assert.Equal(t, []string{"member", "editor", "admin"}, ckan.RoleNames(ckan.RoleNone))
	assert.Equal(t, []string{"member"}, ckan.RoleNames(ckan.RoleNone, ckan.RoleEditor, ckan.RoleAdmin))
}

func TestNormalizeTarget(t *testing.T) {
	t.Parallel()

	allowed := []ckan.TargetObject{
		ckan.ObjectDataset,
		ckan.ObjectGroup,
		ckan.ObjectOrganization,
		ckan.ObjectUser,
	}

	t.Run("rewrites dataset to package", func(t *testing.T) {
		t.Parallel()

		target, err := ckan.NormalizeTarget("dataset", allowed)
		require.NoError(t, err)
		assert.Equal(t, ckan.ObjectPackage, target)
	})

	t.Run("keeps other objects", func(t *testing.T) {
		t.Parallel()

		for _, object := range []string{"group", "organization", "user"} {
			target, err := ckan.NormalizeTarget(object, allowed)
			require.NoError(t, err)
			assert.Equal(t, ckan.TargetObject(object), target)
		}
	})

	t.Run("fails fast for unknown objects", func(t *testing.T) {
		t.Parallel()

		_, err := ckan.NormalizeTarget("space", allowed)
		require.Error(t, err)
		assert.ErrorIs(t, err, ckan.ErrUnknownTargetObject)
	})

	t.Run("fails for objects outside the allow-list", func(t *testing.T) {
		t.Parallel()

		_, err := ckan.NormalizeTarget("user", []ckan.TargetObject{ckan.ObjectDataset})
		require.Error(t, err)
		assert.ErrorIs(t, err, ckan.ErrUnknownTargetObject)
	})
}

func TestActionName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "package_list", ckan.ActionName(ckan.ObjectPackage, "list"))
	assert.Equal(t, "group_show", ckan.ActionName(ckan.ObjectGroup, "show"))
	assert.Equal(t, "organization_member_create", ckan.ActionName(ckan.ObjectOrganization, "member_create"))
	assert.Equal(t, "dataset_purge", ckan.ActionName(ckan.ObjectDataset, "purge"))
}

func TestBatchResult_Record(t *testing.T) {
	t.Parallel()

	result := &ckan.BatchResult{}
	result.Record("alpha", true)
	result.Record("beta", false)
	result.Record("gamma", true)

	assert.Equal(t, []string{"+ alpha", "x beta", "+ gamma"}, result.Results)
	assert.Equal(t, ckan.Summary{Total: 3, Passed: 2, Failed: 1}, result.Summary)
}
