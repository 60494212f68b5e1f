package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) todosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"t"},
		Short:   "Manage todos",
	}

	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a todo to a project",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			t, err := a.store.CreateTodo(ctx, projectID, title, optional(cmd, "description"))
			if err != nil {
				return err
			}
			printSuccess(a.out(), "added todo #%d %s", t.ID, t.Title)
			return nil
		}),
	}
	add.Flags().StringP("title", "t", "", "Todo title")
	add.Flags().StringP("description", "d", "", "Todo description")
	_ = add.MarkFlagRequired("title")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a todo",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.GetTodo(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out(), renderTodo(t))
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title or description of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.store.GetTodo(ctx, id)
			if err != nil {
				return err
			}

			title := cur.Title
			if cmd.Flags().Changed("title") {
				title, _ = cmd.Flags().GetString("title")
			}
			desc := cur.Description
			if cmd.Flags().Changed("description") {
				desc = optional(cmd, "description")
			}

			t, err := a.store.UpdateTodo(ctx, id, title, desc)
			if err != nil {
				return err
			}
			printSuccess(a.out(), "updated todo #%d %s", t.ID, t.Title)
			return nil
		}),
	}
	update.Flags().StringP("title", "t", "", "New title")
	update.Flags().StringP("description", "d", "", "New description")

	toggle := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a todo between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.ToggleTodo(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out(), checkbox(t.IsCompleted)+" "+t.Title)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteTodo(ctx, id); err != nil {
				return err
			}
			printSuccess(a.out(), "deleted todo #%d", id)
			return nil
		}),
	}

	cmd.AddCommand(add, show, update, toggle, del)
	return cmd
}
