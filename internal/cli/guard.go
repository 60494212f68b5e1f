package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string) error

// protected refuses to run without a session.
func (a *app) protected(run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !a.store.IsAuthenticated() {
			return errNotLoggedIn
		}
		return a.run(cmd, args, run)
	}
}

// guestOnly skips login and register when a session exists and shows the
// projects instead.
func (a *app) guestOnly(run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if a.store.IsAuthenticated() {
			u, _ := a.store.User()
			printWarning(a.out(), "already logged in as %s", u.Username)
			return a.run(cmd, nil, func(ctx context.Context, _ *cobra.Command, _ []string) error {
				return a.showProjects(ctx, 1, 10)
			})
		}
		return a.run(cmd, args, run)
	}
}

func (a *app) run(cmd *cobra.Command, args []string, run runFunc) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
	defer cancel()
	if err := run(ctx, cmd, args); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}
