package cli

import (
	"github.com/spf13/cobra"

	"github.com/creatorhub/memberkit/internal/api/dto"
)

func newMemberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Inspect and update the member persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			env, err := rt.Members.GetCurrentMember(cmd.Context())
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), env.Data)
		},
	}

	var emailNotifications, pushNotifications, showMemberships bool
	var language string
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Update member settings; only flags that are set are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.UpdateMemberSettingsRequest
			flags := cmd.Flags()
			if flags.Changed("email-notifications") {
				req.EmailNotifications = &emailNotifications
			}
			if flags.Changed("push-notifications") {
				req.PushNotifications = &pushNotifications
			}
			if flags.Changed("show-memberships") {
				req.ShowMemberships = &showMemberships
			}
			if flags.Changed("language") {
				req.Language = &language
			}

			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			env, err := rt.Members.UpdateSettings(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), env.Data)
		},
	}
	settings.Flags().BoolVar(&emailNotifications, "email-notifications", false, "receive email notifications")
	settings.Flags().BoolVar(&pushNotifications, "push-notifications", false, "receive push notifications")
	settings.Flags().BoolVar(&showMemberships, "show-memberships", false, "show memberships on the public profile")
	settings.Flags().StringVar(&language, "language", "", "preferred language")

	cmd.AddCommand(show, settings)
	return cmd
}
