package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) registerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringP("username", "u", "", "Username")
	cmd.Flags().StringP("email", "e", "", "Email")
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	cmd.RunE = a.guestOnly(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
		username, err := a.flagOrPrompt(cmd, "username", "Username")
		if err != nil {
			return err
		}
		email, err := a.flagOrPrompt(cmd, "email", "Email")
		if err != nil {
			return err
		}
		password, err := a.password(cmd)
		if err != nil {
			return err
		}

		u, err := a.store.Register(ctx, username, email, password)
		if err != nil {
			return err
		}
		printSuccess(a.out(), "registered and logged in as %s", u.Username)
		return nil
	})
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringP("username", "u", "", "Username")
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	cmd.RunE = a.guestOnly(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
		username, err := a.flagOrPrompt(cmd, "username", "Username")
		if err != nil {
			return err
		}
		password, err := a.password(cmd)
		if err != nil {
			return err
		}

		u, err := a.store.Login(ctx, username, password)
		if err != nil {
			return err
		}
		printSuccess(a.out(), "logged in as %s", u.Username)
		return a.showProjects(ctx, 1, 10)
	})
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Logout(); err != nil {
				return err
			}
			printSuccess(a.out(), "logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, ok := a.store.User()
			if !ok {
				return errNotLoggedIn
			}
			fmt.Fprintf(a.out(), "%s %s\n", titleStyle.Render(u.Username), mutedStyle.Render(fmt.Sprintf("(id %d)", u.ID)))
			return nil
		},
	}
}

func (a *app) flagOrPrompt(cmd *cobra.Command, flag, prompt string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	return GetSimpleText(a.reader, prompt, a.out())
}

func (a *app) password(cmd *cobra.Command) (string, error) {
	if v, _ := cmd.Flags().GetString("password"); v != "" {
		return v, nil
	}
	return GetPassword(a.reader, a.out())
}
