package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd(o *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an access/refresh token pair",
		Long:  `Log in against /auth/login/ and print the tokens. The password may come from SHOP_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SHOP_PASSWORD")
			}
			if email == "" || password == "" {
				return errors.New("--email and --password (or SHOP_PASSWORD) are required")
			}
			tokens, err := o.client().Auth().Login(cmd.Context(), email, password)
			if err != nil {
				return describe(err)
			}
			if o.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), tokens)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Access:  %s\nRefresh: %s\n", tokens.Access, tokens.Refresh)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newMeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := o.client().Auth().CurrentUser(cmd.Context(), o.resolveToken())
			if err != nil {
				return describe(err)
			}
			if o.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), user)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ID:     %d\nNom:    %s\nEmail:  %s\nActif:  %t\n", user.ID, user.Nom, user.Email, user.IsActive)
			return err
		},
	}
}
