package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ckanta-io/ckanta-client/internal/command"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// NewMembershipCommand creates the membership command group.
func NewMembershipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "membership",
		Short: "Manage a user's organization and group memberships",
		Long:  "List and grant a user's role associations with organizations, groups and datasets",
	}

	cmd.AddCommand(newMembershipListCommand())
	cmd.AddCommand(newMembershipGrantCommand())

	return cmd
}

func newMembershipListCommand() *cobra.Command {
	var checkGroup bool

	cmd := &cobra.Command{
		Use:   "list USERID",
		Short: "List a user's memberships",
		Long:  "List the organizations a user belongs to, and the groups as well when --check-group is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembershipListCommand(args[0], checkGroup)
		},
	}

	cmd.Flags().BoolVarP(&checkGroup, "check-group", "g", false, "also list group memberships")

	return cmd
}

func runMembershipListCommand(userID string, checkGroup bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	listCmd, err := command.NewMembershipCommand(client, userID, checkGroup)
	if err != nil {
		return err
	}

	results, err := listCmd.Execute(context.Background(), viper.GetBool("get"))
	if err != nil {
		return err
	}

	for _, result := range results {
		if err := RenderActionResult("membership", result); err != nil {
			return err
		}
	}

	return nil
}

func newMembershipGrantCommand() *cobra.Command {
	var (
		role    string
		targets string
	)

	cmd := &cobra.Command{
		Use:   "grant OBJECT USERID",
		Short: "Grant a user a role on groups, organizations or datasets",
		Long: `Grant a user a membership role per target object.

For groups and organizations one member_create call is issued per target.
For datasets the portal's access-request flow is used: the request is
issued as the target user, then approved with the caller's key.
Accepted roles: ` + strings.Join(ckan.RoleNames(ckan.RoleNone), ", ") + `.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembershipGrantCommand(args[0], args[1], role, targets)
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", string(ckan.RoleMember), "role to grant")
	cmd.Flags().StringVarP(&targets, "targets", "t", "", "comma-separated target object ids")
	_ = cmd.MarkFlagRequired("targets")

	return cmd
}

func runMembershipGrantCommand(object, userID, roleName, targetList string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	role, err := ckan.ParseRole(roleName)
	if err != nil {
		return err
	}

	var targets []string

	for _, target := range strings.Split(targetList, ",") {
		if target = strings.TrimSpace(target); target != "" {
			targets = append(targets, target)
		}
	}

	asUser := func(apikey string) command.ActionCaller {
		return client.WithAPIKey(apikey)
	}

	grantCmd, err := command.NewMembershipGrantCommand(client, asUser, object, userID, role, targets)
	if err != nil {
		return err
	}

	result, err := grantCmd.Execute(context.Background())
	if err != nil {
		return err
	}

	return RenderBatchResult(result)
}
