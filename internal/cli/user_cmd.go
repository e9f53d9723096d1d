package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rebound/internal/contract"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserAddCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var req contract.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user, or update the user with that email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				if !app.interactive() || app.PromptPassword == nil {
					return errors.New("--password is required when not running in a terminal")
				}
				pw, err := app.PromptPassword(req.Email)
				if err != nil {
					return err
				}
				req.Password = pw
			}

			u, created, err := app.Admin.EnsureUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			verb := "Updated"
			if created {
				verb = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s <%s>\n", verb, u.Role, u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Role, "role", "student", "student, teacher or admin")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
