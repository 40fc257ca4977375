// cmd/farmctl/auth.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/farmfresh/internal/client"
	"github.com/javajoker/farmfresh/internal/dashboard"
	"github.com/javajoker/farmfresh/internal/models"
)

// authFailure reports login and registration errors. A 401 here means bad
// credentials, not an expired session, so the server's text is preferred.
func authFailure(err error) error {
	if msg := client.ServerMessage(err); msg != "" {
		return errors.New(msg)
	}
	return errors.New(dashboard.MsgGenericFailure)
}

func (a *app) registerCommand() *cobra.Command {
	var req models.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a farmer or customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = models.Role(role)
			if !req.Role.Valid() {
				return fmt.Errorf("role must be farmer or customer")
			}

			user, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				return authFailure(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Signed in as %s.\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 6 characters)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleCustomer), "farmer or customer")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Address, "address", "", "delivery or farm address")
	for _, name := range []string{"name", "email", "password", "phone", "address"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return authFailure(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return errors.New(dashboard.Describe(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}
