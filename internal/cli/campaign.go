package cli

import (
	"github.com/spf13/cobra"
)

func newCampaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Inspect the creator campaign",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the campaign of the creator persona",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			env, err := rt.Creator.GetMyCampaign(cmd.Context())
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), env.Data)
		},
	})
	return cmd
}
