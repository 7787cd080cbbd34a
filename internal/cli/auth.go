package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/domain"
)

const passwordEnv = "MEMBERKIT_PASSWORD"

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. The token and the active persona are kept in the
credential store until 'memberctl logout'.

The password may also be given through MEMBERKIT_PASSWORD.

Examples:
  memberctl login --email ada@example.com --password secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				return errors.New("--password or " + passwordEnv + " is required")
			}

			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			res, err := rt.Sessions.Login(cmd.Context(), dto.SignInRequest{Login: email, Password: password})
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"loggedIn":  true,
				"user":      res.User,
				"expiresAt": res.ExpiresAt,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			if err := rt.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"loggedIn": false})
		},
	}
}

// sessionStatus is printed by whoami. Tokens are never printed.
type sessionStatus struct {
	LoggedIn            bool               `json:"loggedIn"`
	Role                domain.PersonaRole `json:"role,omitempty"`
	HasMemberToken      bool               `json:"hasMemberToken"`
	HasCampaignToken    bool               `json:"hasCampaignToken"`
	IsCreatorCreated    bool               `json:"isCreatorCreated"`
	AssociateCampaignID string             `json:"associateCampaignId,omitempty"`
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			cred, ok, err := rt.Sessions.Current(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return printJSON(cmd.OutOrStdout(), sessionStatus{})
			}

			tokens, err := rt.Session.PersonaTokens(ctx)
			if err != nil {
				return err
			}
			created, err := rt.Session.CreatorCreated(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sessionStatus{
				LoggedIn:            true,
				Role:                cred.Role,
				HasMemberToken:      tokens.Member != "",
				HasCampaignToken:    tokens.Campaign != "",
				IsCreatorCreated:    created,
				AssociateCampaignID: tokens.AssociateCampaignID,
			})
		},
	}
}
