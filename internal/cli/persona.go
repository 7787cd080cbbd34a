package cli

import (
	"github.com/spf13/cobra"

	"github.com/creatorhub/memberkit/internal/domain"
)

func newPersonaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Switch the acting persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newPersonaSwitchCommand(), newPersonaSelectCampaignCommand())
	return cmd
}

func newPersonaSwitchCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "switch <member|creator|associate>",
		Short:     "Make a persona active and fetch its tokens",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"member", "creator", "associate"},
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := domain.ParseRole(args[0])
			if err != nil {
				return err
			}
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			info, err := rt.Sessions.SwitchPersona(cmd.Context(), role)
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"role":             role,
				"isCreatorCreated": info.IsCreatorCreated,
				"campaignId":       info.CampaignID,
			})
		},
	}
}

func newPersonaSelectCampaignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select-campaign <campaign-id>",
		Short: "Choose the creator an associate acts for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			if err := rt.Sessions.SelectAssociateCampaign(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"associateCampaignId": args[0]})
		},
	}
}
