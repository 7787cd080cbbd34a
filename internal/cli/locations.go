package cli

import (
	"github.com/spf13/cobra"
)

func newLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Browse the platform location catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "countries",
			Short: "List supported countries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, err := runtimeFrom(cmd)
				if err != nil {
					return err
				}
				env, err := rt.Locations.GetCountries(cmd.Context())
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), env.Data)
			},
		},
		&cobra.Command{
			Use:   "states <country-code>",
			Short: "List the states of a country",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := runtimeFrom(cmd)
				if err != nil {
					return err
				}
				env, err := rt.Locations.GetStates(cmd.Context(), args[0])
				if err != nil {
					return describe(err)
				}
				return printJSON(cmd.OutOrStdout(), env.Data)
			},
		},
	)
	return cmd
}
